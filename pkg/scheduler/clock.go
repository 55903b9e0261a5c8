// Package scheduler 提供基于帧时钟的定时任务
//
// 所有"等待一段时间后执行"的行为（障碍生成、道具生成、扇翅动画、死亡翻滚结束）
// 都注册为 Clock 上的 Task，由游戏主循环每帧调用 Advance 推进。
// Clock 的 Speed 相当于节点的局部速度：为 0 时所有任务暂停但不丢失进度。
package scheduler

import "fmt"

// timeEpsilon 用于吸收逐帧累加的浮点误差（如 120 次 1/60 累加不等于 2.0）
const timeEpsilon = 1e-9

// TaskID 任务的唯一标识，用于取消
type TaskID uint64

// Task 描述一个定时任务
type Task struct {
	Name     string  // 任务名称，仅用于日志
	Interval float64 // 首次触发前的等待时间（秒），必须 > 0
	Repeat   bool    // 是否重复触发
	OnFire   func()  // 触发回调

	// NextInterval 可选：重复任务每次触发后重新计算下一次间隔（如随机间隔）
	// 为 nil 时沿用 Interval
	NextInterval func() float64
}

type scheduledTask struct {
	id        TaskID
	task      Task
	remaining float64
	cancelled bool
}

// Clock 帧时钟
type Clock struct {
	// Speed 局部时间倍率，1 为正常速度，0 为暂停
	Speed float64

	nextID TaskID
	tasks  []*scheduledTask
}

// NewClock 创建一个速度为 1 的时钟
func NewClock() *Clock {
	return &Clock{
		Speed:  1,
		nextID: 1,
		tasks:  make([]*scheduledTask, 0),
	}
}

// Schedule 注册一个任务并返回其ID
//
// 参数非法（间隔 <= 0 或回调为 nil）属于编程错误，直接 panic
func (c *Clock) Schedule(task Task) TaskID {
	if task.Interval <= 0 {
		panic(fmt.Sprintf("scheduler: task %q interval must be > 0, got %v", task.Name, task.Interval))
	}
	if task.OnFire == nil {
		panic(fmt.Sprintf("scheduler: task %q has nil OnFire", task.Name))
	}

	id := c.nextID
	c.nextID++
	c.tasks = append(c.tasks, &scheduledTask{
		id:        id,
		task:      task,
		remaining: task.Interval,
	})
	return id
}

// Cancel 取消任务，返回任务是否仍处于挂起状态
func (c *Clock) Cancel(id TaskID) bool {
	for _, st := range c.tasks {
		if st.id == id && !st.cancelled {
			st.cancelled = true
			return true
		}
	}
	return false
}

// CancelAll 取消所有挂起任务
func (c *Clock) CancelAll() {
	for _, st := range c.tasks {
		st.cancelled = true
	}
}

// Pending 返回挂起（未取消、未完成）的任务数量
func (c *Clock) Pending() int {
	n := 0
	for _, st := range c.tasks {
		if !st.cancelled {
			n++
		}
	}
	return n
}

// IsPending 检查指定任务是否仍挂起
func (c *Clock) IsPending(id TaskID) bool {
	for _, st := range c.tasks {
		if st.id == id {
			return !st.cancelled
		}
	}
	return false
}

// Scaled 把真实帧间隔换算为本时钟的局部时间
func (c *Clock) Scaled(dt float64) float64 {
	if c.Speed <= 0 {
		return 0
	}
	return dt * c.Speed
}

// Advance 推进时钟并触发到期任务
//
// 回调中新注册的任务从下一帧开始计时；回调中取消的任务不会再触发。
func (c *Clock) Advance(dt float64) {
	scaled := c.Scaled(dt)
	if scaled <= 0 {
		return
	}

	// 快照：回调可能追加任务
	snapshot := c.tasks
	for _, st := range snapshot {
		if st.cancelled {
			continue
		}
		st.remaining -= scaled
		for st.remaining <= timeEpsilon && !st.cancelled {
			st.task.OnFire()
			if !st.task.Repeat {
				st.cancelled = true
				break
			}
			next := st.task.Interval
			if st.task.NextInterval != nil {
				next = st.task.NextInterval()
			}
			if next <= 0 {
				panic(fmt.Sprintf("scheduler: task %q produced non-positive interval %v", st.task.Name, next))
			}
			st.remaining += next
		}
	}

	c.compact()
}

// compact 移除已取消/已完成的任务
func (c *Clock) compact() {
	alive := c.tasks[:0]
	for _, st := range c.tasks {
		if !st.cancelled {
			alive = append(alive, st)
		}
	}
	// 清理尾部引用，便于回收
	for i := len(alive); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = alive
}
