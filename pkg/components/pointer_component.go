package components

// PointerComponent 指针状态
//
// 只由指针移动 / 离开事件处理函数写入，模拟步骤只读。
// 两者运行在同一个事件循环 goroutine 上，因此无需加锁；
// 如果移植到并发事件源，必须先把事件汇集到帧循环所在的 goroutine。
type PointerComponent struct {
	// Present 为 false 时 X/Y/VX/VY 无意义，不能当作原点使用
	Present bool

	// 当前位置（视口坐标）
	X float64
	Y float64

	// 与上一次记录位置之差；没有上一次位置时为 0
	VX float64
	VY float64

	// Seq 每次移动事件递增，模拟步骤据此判断本帧是否有新的移动
	Seq uint64
}
