package graph

// TaskRecord is one entry of the "tasks" array in a task graph document.
type TaskRecord struct {
	ID           int   `json:"id"`
	Duration     int   `json:"duration"`
	Memory       int   `json:"memory"`
	Dependencies []int `json:"dependencies"`
}

// Document is the top-level shape of a task graph input file: a single
// "tasks" key holding the array of task records.
type Document struct {
	Tasks []TaskRecord `json:"tasks"`
}

// Binding is the warm-start priority ordering handed back and forth between
// runs: a heap snapshot (`order`, pairs of priority and task id) plus the
// upper bound computed alongside it.
type Binding struct {
	Order [][2]int `json:"order"`
	UB    int      `json:"ub"`
}
