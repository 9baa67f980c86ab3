package iterator

import "github.com/opdss/eventbus/contracts/iterator"

var _ iterator.Iterator[any] = (*SliceIterator[any])(nil)

// SliceIterator 切片数据迭代器
type SliceIterator[T any] struct {
	data  []T
	index int
}

func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{data: data}
}

func (it *SliceIterator[T]) Next() bool {
	return it.index < len(it.data)
}

func (it *SliceIterator[T]) Value() T {
	if it.index >= len(it.data) {
		var v T
		return v
	}
	v := it.data[it.index]
	it.index++
	return v
}

// Collect 取出迭代器中剩余的全部数据
func Collect[T any](it iterator.Iterator[T]) []T {
	var out []T
	for it.Next() {
		out = append(out, it.Value())
	}
	return out
}
