package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agalitsyn/meetup-tasks/internal/model"
)

type sortField string

const (
	sortByDeadline sortField = "deadline"
	sortByPriority sortField = "priority"
	sortByStatus   sortField = "status"
)

// tableState is the display state of the task table: which rows show and in
// what order. It never touches stored tasks.
type tableState struct {
	status    model.TaskStatus // matched against the displayed status
	priority  model.TaskPriority
	search    string
	sortBy    sortField
	ascending bool
}

func defaultTableState() tableState {
	return tableState{sortBy: sortByDeadline, ascending: true}
}

var priorityRank = map[model.TaskPriority]int{
	model.TaskPriorityLow:    0,
	model.TaskPriorityMedium: 1,
	model.TaskPriorityHigh:   2,
}

var statusRank = map[model.TaskStatus]int{
	model.TaskStatusPending: 0,
	model.TaskStatusOverdue: 1,
	model.TaskStatusDone:    2,
}

// applyTableState filters and orders tasks for display. The status filter
// matches the effective status at the given time, the search term matches
// title or assignee case-insensitively, the sort is stable.
func applyTableState(tasks []model.Task, st tableState, now time.Time) []model.Task {
	view := make([]model.Task, 0, len(tasks))
	needle := strings.ToLower(st.search)
	for _, t := range tasks {
		if st.status != "" && t.EffectiveStatus(now) != st.status {
			continue
		}
		if st.priority != "" && t.Priority != st.priority {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.AssignedTo), needle) {
			continue
		}
		view = append(view, t)
	}

	sort.SliceStable(view, func(i, j int) bool {
		a, b := view[i], view[j]
		if !st.ascending {
			a, b = b, a
		}
		switch st.sortBy {
		case sortByPriority:
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		case sortByStatus:
			return statusRank[a.EffectiveStatus(now)] < statusRank[b.EffectiveStatus(now)]
		default:
			return a.Deadline.Before(b.Deadline)
		}
	})

	return view
}

func (s *Session) currentView(ctx context.Context) ([]model.Task, error) {
	event, err := s.requireEvent(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskStorage.FilterTasks(ctx, model.TaskFilter{EventID: event.ID})
	if err != nil {
		return nil, fmt.Errorf("could not fetch tasks: %w", err)
	}
	return applyTableState(tasks, s.table, s.now()), nil
}

func (s *Session) listTasksCommand(ctx context.Context) error {
	tasks, err := s.currentView(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, "no tasks match your filters")
		return nil
	}
	renderTaskTable(s.out, tasks, s.now())
	return nil
}

func (s *Session) filterCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: filter status|priority|search <value> | filter clear")
	}

	switch args[0] {
	case "clear":
		st := s.table
		s.table = defaultTableState()
		s.table.sortBy, s.table.ascending = st.sortBy, st.ascending
	case "status":
		if len(args) != 2 {
			return fmt.Errorf("usage: filter status pending|done|overdue")
		}
		status := model.TaskStatus(strings.ToLower(args[1]))
		if status != model.TaskStatusPending && status != model.TaskStatusDone && status != model.TaskStatusOverdue {
			return fmt.Errorf("unknown status %q", args[1])
		}
		s.table.status = status
	case "priority":
		if len(args) != 2 {
			return fmt.Errorf("usage: filter priority low|medium|high")
		}
		priority, ok := model.ParseTaskPriority(args[1])
		if !ok {
			return fmt.Errorf("unknown priority %q", args[1])
		}
		s.table.priority = priority
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: filter search <text>")
		}
		s.table.search = strings.Join(args[1:], " ")
	default:
		return fmt.Errorf("unknown filter %q", args[0])
	}

	return s.listTasksCommand(ctx)
}

func (s *Session) sortCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sort deadline|priority|status [asc|desc]")
	}

	field := sortField(strings.ToLower(args[0]))
	switch field {
	case sortByDeadline, sortByPriority, sortByStatus:
	default:
		return fmt.Errorf("unknown sort field %q", args[0])
	}

	ascending := true
	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "asc":
		case "desc":
			ascending = false
		default:
			return fmt.Errorf("sort order must be asc or desc, got %q", args[1])
		}
	} else if field == s.table.sortBy {
		// repeating the same field flips the order, like clicking a column header
		ascending = !s.table.ascending
	}

	s.table.sortBy = field
	s.table.ascending = ascending
	return s.listTasksCommand(ctx)
}

var titleCaser = cases.Title(language.English)

func renderTaskTable(out io.Writer, tasks []model.Task, now time.Time) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tTITLE\tASSIGNED TO\tPHONE\tDEADLINE\tPRIORITY\tSTATUS")
	for i, t := range tasks {
		fmt.Fprintf(w, "%3d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			t.Title,
			t.AssignedTo,
			t.Phone,
			t.Deadline.Format("2006-01-02 15:04"),
			colorPriority(t.Priority),
			colorStatus(t.EffectiveStatus(now)),
		)
	}
	w.Flush()
}

func colorStatus(status model.TaskStatus) string {
	label := titleCaser.String(string(status))
	switch status {
	case model.TaskStatusDone:
		return color.GreenString(label)
	case model.TaskStatusOverdue:
		return color.RedString(label)
	default:
		return color.YellowString(label)
	}
}

func colorPriority(priority model.TaskPriority) string {
	label := titleCaser.String(string(priority))
	switch priority {
	case model.TaskPriorityHigh:
		return color.RedString(label)
	case model.TaskPriorityLow:
		return color.BlueString(label)
	default:
		return color.YellowString(label)
	}
}

func renderStats(out io.Writer, stats model.DashboardStats) {
	fmt.Fprintf(out, "total: %d  %s: %d  %s: %d  %s: %d\n",
		stats.TotalTasks,
		color.GreenString("done"), stats.CompletedTasks,
		color.YellowString("pending"), stats.PendingTasks,
		color.RedString("overdue"), stats.OverdueTasks,
	)

	const width = 20
	filled := stats.ProductivityPercentage * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Fprintf(out, "productivity: [%s] %d%%\n", color.GreenString(bar), stats.ProductivityPercentage)
}
