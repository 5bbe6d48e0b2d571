package domain

// ShiftTotal is the count and amount earned for one shift type.
type ShiftTotal struct {
	Count  int
	Amount int64
}

// PaymentResult aggregates one worker's shifts. It is derived, never stored.
type PaymentResult struct {
	WorkerName  string
	TotalAmount int64
	Breakdown   map[ShiftType]ShiftTotal
}

func (p PaymentResult) ShiftCount() int {
	n := 0
	for _, t := range p.Breakdown {
		n += t.Count
	}
	return n
}
