package scheduler

import (
	"container/heap"

	"ticket-assigner/models"
)

type queueItem struct {
	ticket   models.Ticket
	priority models.TicketPriority
}

// ticketQueue is a max-heap on priority score. Equal scores pop in ascending
// ticket id order so a run never depends on input order.
type ticketQueue []queueItem

func (q ticketQueue) Len() int { return len(q) }

func (q ticketQueue) Less(i, j int) bool {
	if q[i].priority.Score == q[j].priority.Score {
		return q[i].ticket.ID < q[j].ticket.ID
	}
	return q[i].priority.Score > q[j].priority.Score
}

func (q ticketQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *ticketQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *ticketQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// newTicketQueue builds the heap in one pass.
// Time: O(n) for heap.Init, O(log n) per pop.
func newTicketQueue(items []queueItem) *ticketQueue {
	q := ticketQueue(items)
	heap.Init(&q)
	return &q
}
