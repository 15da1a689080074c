package game

// FrameQueue requestAnimationFrame 语义的帧队列
//
// Flush 只执行调用时已挂起的回调；回调执行期间新请求的帧留到下一次 Flush。
// CancelFrame 可以取消尚未执行的回调，包括本次 Flush 中排在后面的回调。
type FrameQueue struct {
	nextID   FrameID
	pending  []queuedFrame
	flushing []queuedFrame
}

type queuedFrame struct {
	id        FrameID
	cb        FrameCallback
	cancelled bool
}

// RequestFrame 请求在下一次 Flush 时执行 cb
func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	q.nextID++
	q.pending = append(q.pending, queuedFrame{id: q.nextID, cb: cb})
	return q.nextID
}

// CancelFrame 取消尚未执行的回调，未知或已执行的 id 忽略
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.flushing {
		if q.flushing[i].id == id {
			q.flushing[i].cancelled = true
			return
		}
	}
}

// Pending 返回等待执行的回调数量
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush 执行所有已挂起的回调，返回实际执行的数量
func (q *FrameQueue) Flush(nowMs float64) int {
	q.flushing = q.pending
	q.pending = nil

	ran := 0
	for i := range q.flushing {
		if q.flushing[i].cancelled {
			continue
		}
		q.flushing[i].cancelled = true
		q.flushing[i].cb(nowMs)
		ran++
	}
	q.flushing = nil
	return ran
}
