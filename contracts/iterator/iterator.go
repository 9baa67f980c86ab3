package iterator

type Iterator[T any] interface {
	// Next 是否还有下一条数据，不移动游标
	Next() bool
	// Value 取出下一条数据并移动游标，越界时返回零值
	Value() T
}
