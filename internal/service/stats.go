package service

// Stats are dashboard counts derived from a task list.
type Stats struct {
	Total        int
	Completed    int
	Open         int // every task not completed, shown as "Pending" on the dashboard
	HighPriority int

	ByStatus   map[Status]int
	ByPriority map[Priority]int
}

// ComputeStats counts tasks by status and priority.
func ComputeStats(tasks []Task) Stats {
	s := Stats{
		Total:      len(tasks),
		ByStatus:   make(map[Status]int, len(Statuses)),
		ByPriority: make(map[Priority]int, len(Priorities)),
	}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.Completed() {
			s.Completed++
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	s.Open = s.Total - s.Completed
	return s
}
