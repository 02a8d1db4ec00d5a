package mcp

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/khryptorgraphics/mcpscheduler/pkg/graph"
)

// ScheduledTask is one entry of a processor's task list in the schedule
// output document.
type ScheduledTask struct {
	Task      int `json:"task"`
	StartTime int `json:"start_time"`
	Duration  int `json:"duration"`
}

// ScheduleDocument is the external JSON shape of a schedule: one
// "core_<i>" key per processor id referenced anywhere in the timeline.
type ScheduleDocument map[string][]ScheduledTask

// EncodeSchedule renders a Result's schedule into the external document
// shape, including an empty array for every processor the timeline
// references even if nothing was ever placed on it.
func EncodeSchedule(result *Result, timeline *Timeline) ScheduleDocument {
	doc := make(ScheduleDocument)
	for _, p := range timeline.allProcessors() {
		doc[fmt.Sprintf("core_%d", p)] = []ScheduledTask{}
	}
	for _, placed := range result.Schedule {
		key := fmt.Sprintf("core_%d", placed.Processor)
		doc[key] = append(doc[key], ScheduledTask{Task: placed.TaskID, StartTime: placed.StartTime, Duration: placed.Duration})
	}
	return doc
}

// BindingFromJSON converts the order/ub JSON shape into a Binding.
func BindingFromJSON(order [][2]int, ub int) Binding {
	entries := make([]PriorityEntry, len(order))
	for i, pair := range order {
		entries[i] = PriorityEntry{Priority: pair[0], TaskID: pair[1]}
	}
	return Binding{Order: entries, UB: ub}
}

// EncodeBinding converts SavedOrder/UB back into the [][2]int/ub shape used
// by the updated binding document.
func EncodeBinding(result *Result) ([][2]int, int) {
	order := make([][2]int, len(result.SavedOrder))
	for i, e := range result.SavedOrder {
		order[i] = [2]int{e.Priority, e.TaskID}
	}
	return order, result.UB
}

// TimelineFromThresholds builds a Timeline from parallel threshold/low/high
// slices, sorting by threshold and validating that threshold 0 is present
// and thresholds are strictly increasing — the same shape the in-process
// availability configuration and the YAML config file both describe.
func TimelineFromThresholds(thresholds []int, low, high [][]int) (*Timeline, error) {
	if len(thresholds) == 0 || len(thresholds) != len(low) || len(thresholds) != len(high) {
		return nil, fmt.Errorf("availability: thresholds, low, and high must be equal-length and non-empty")
	}

	idx := make([]int, len(thresholds))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return thresholds[idx[i]] < thresholds[idx[j]] })

	t := &Timeline{
		Thresholds: make([]int, len(thresholds)),
		Low:        make([][]int, len(thresholds)),
		High:       make([][]int, len(thresholds)),
	}
	for i, j := range idx {
		t.Thresholds[i] = thresholds[j]
		t.Low[i] = append([]int(nil), low[j]...)
		t.High[i] = append([]int(nil), high[j]...)
	}

	if t.Thresholds[0] != 0 {
		return nil, fmt.Errorf("availability: smallest threshold must be 0")
	}
	for i := 1; i < len(t.Thresholds); i++ {
		if t.Thresholds[i] <= t.Thresholds[i-1] {
			return nil, fmt.Errorf("availability: thresholds must be strictly increasing")
		}
	}
	return t, nil
}

// DecodeDocument parses a task graph document's raw JSON bytes into task
// records, without yet validating the graph (graph.Build does that).
func DecodeDocument(data []byte) ([]graph.TaskRecord, error) {
	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode task graph document: %w", err)
	}
	return doc.Tasks, nil
}
