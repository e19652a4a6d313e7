// Package app is the interactive terminal session: a read-dispatch-render
// loop over the in-memory event and task collections.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/meetup-tasks/internal/model"
	"github.com/agalitsyn/meetup-tasks/version"
)

type Session struct {
	in  io.Reader
	out io.Writer

	eventStorage model.EventRepository
	taskStorage  model.TaskRepository

	lines chan string
	forms *formValidator

	selectedEventID string
	table           tableState

	// wall clock, swappable in tests
	nowFn func() time.Time
}

func NewSession(
	in io.Reader,
	out io.Writer,
	eventStorage model.EventRepository,
	taskStorage model.TaskRepository,
) *Session {
	return &Session{
		in:           in,
		out:          out,
		eventStorage: eventStorage,
		taskStorage:  taskStorage,
		forms:        newFormValidator(),
		table:        defaultTableState(),
		nowFn:        time.Now,
	}
}

func (s *Session) now() time.Time { return s.nowFn() }

// SelectEvent makes the event current before the session starts, used by the
// -event flag.
func (s *Session) SelectEvent(eventID string) {
	s.selectedEventID = eventID
}

func (s *Session) Start(ctx context.Context) {
	s.lines = make(chan string)
	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintf(s.out, "meetup-tasks %s, type \"help\" for commands\n", version.String())
	for {
		fmt.Fprint(s.out, "> ")
		line, ok := s.readLine(ctx)
		if !ok {
			if ctx.Err() != nil {
				lgr.Printf("DEBUG session stopped: %s", ctx.Err())
			} else {
				lgr.Printf("DEBUG input closed, session stopped")
			}
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == "quit" || strings.TrimSpace(line) == "exit" {
			return
		}
		if err := s.handleCommand(ctx, line); err != nil {
			lgr.Printf("ERROR handling command: %s", err)
			fmt.Fprintln(s.out, color.RedString("error: %s", err))
		}
	}
}

// readLine hands out the next input line, doubling as the prompt reader for
// interactive forms. Returns false once input is exhausted or ctx is done.
func (s *Session) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	args := strings.Fields(line)
	command := args[0]
	args = args[1:]

	switch command {
	case "help":
		return s.helpCommand()
	case "version":
		_, err := fmt.Fprintln(s.out, version.String())
		return err
	case "events":
		return s.listEventsCommand(ctx)
	case "event":
		if len(args) == 0 {
			return errors.New("usage: event add | event rm <n>")
		}
		switch args[0] {
		case "add":
			return s.addEventCommand(ctx)
		case "rm":
			return s.removeEventCommand(ctx, args[1:])
		default:
			return fmt.Errorf("unknown event subcommand %q", args[0])
		}
	case "use":
		return s.useEventCommand(ctx, args)
	case "tasks":
		return s.listTasksCommand(ctx)
	case "filter":
		return s.filterCommand(ctx, args)
	case "sort":
		return s.sortCommand(ctx, args)
	case "add":
		return s.addTaskCommand(ctx)
	case "edit":
		return s.editTaskCommand(ctx, args)
	case "done":
		return s.toggleDoneCommand(ctx, args)
	case "rm":
		return s.removeTaskCommand(ctx, args)
	case "import":
		return s.importCommand(ctx, args)
	case "stats":
		return s.statsCommand(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, type \"help\"\n", command)
		return nil
	}
}

func (s *Session) helpCommand() error {
	const usage = `commands:
  events                     list events
  event add                  create an event (prompts for name and date)
  event rm <n>               delete event n and all of its tasks
  use <n>                    select event n as current

  tasks                      show tasks of the current event
  filter status <v>          show only pending | done | overdue (as displayed)
  filter priority <v>        show only low | medium | high
  filter search <text>       match title or assignee
  filter clear               drop all filters
  sort <field> [asc|desc]    order by deadline | priority | status

  add                        create a task (interactive form)
  edit <n>                   edit task n (empty input keeps the current value)
  done <n>                   toggle task n between pending and done
  rm <n>                     delete task n
  import <file.csv>          bulk-import tasks into the current event

  stats                      dashboard counts and productivity
  version                    build info
  quit                       end the session (state is discarded)`
	_, err := fmt.Fprintln(s.out, usage)
	return err
}

func (s *Session) listEventsCommand(ctx context.Context) error {
	events, err := s.eventStorage.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("could not list events: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(s.out, "no events yet, try \"event add\"")
		return nil
	}

	for i, event := range events {
		tasks, err := s.taskStorage.FilterTasks(ctx, model.TaskFilter{EventID: event.ID})
		if err != nil {
			return fmt.Errorf("could not count tasks: %w", err)
		}
		marker := " "
		if event.ID == s.selectedEventID {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %2d. %s  %s  (%d tasks)\n",
			marker, i+1, event.Date.Format("2006-01-02"), event.Name, len(tasks))
	}
	return nil
}

func (s *Session) useEventCommand(ctx context.Context, args []string) error {
	event, err := s.resolveEvent(ctx, args)
	if err != nil {
		return err
	}
	s.selectedEventID = event.ID
	fmt.Fprintf(s.out, "using event %q\n", event.Name)
	return nil
}

func (s *Session) removeEventCommand(ctx context.Context, args []string) error {
	event, err := s.resolveEvent(ctx, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "delete event %q and all of its tasks? [y/N] ", event.Name)
	answer, ok := s.readLine(ctx)
	if !ok || strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(s.out, "cancelled")
		return nil
	}

	if err := s.eventStorage.DeleteEvent(ctx, event.ID); err != nil {
		return fmt.Errorf("could not delete event: %w", err)
	}
	if s.selectedEventID == event.ID {
		s.selectedEventID = ""
	}
	lgr.Printf("DEBUG deleted event id=%s", event.ID)
	fmt.Fprintln(s.out, "deleted")
	return nil
}

func (s *Session) toggleDoneCommand(ctx context.Context, args []string) error {
	task, err := s.resolveTask(ctx, args)
	if err != nil {
		return err
	}
	updated, err := s.taskStorage.ToggleTaskDone(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("could not toggle task: %w", err)
	}
	fmt.Fprintf(s.out, "%q is now %s\n", updated.Title, updated.Status)
	return nil
}

func (s *Session) removeTaskCommand(ctx context.Context, args []string) error {
	task, err := s.resolveTask(ctx, args)
	if err != nil {
		return err
	}
	if err := s.taskStorage.RemoveTask(ctx, task.ID); err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}
	lgr.Printf("DEBUG removed task id=%s", task.ID)
	fmt.Fprintf(s.out, "removed %q\n", task.Title)
	return nil
}

func (s *Session) statsCommand(ctx context.Context) error {
	stats, err := s.taskStorage.DashboardStats(ctx, s.now())
	if err != nil {
		return fmt.Errorf("could not compute stats: %w", err)
	}
	renderStats(s.out, stats)
	return nil
}

// resolveEvent turns a 1-based listing number into an event. The listing
// order is insertion order, so indexes stay stable within a session.
func (s *Session) resolveEvent(ctx context.Context, args []string) (*model.Event, error) {
	if len(args) != 1 {
		return nil, errors.New("expected an event number, see \"events\"")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("not an event number: %q", args[0])
	}
	events, err := s.eventStorage.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}
	if n < 1 || n > len(events) {
		return nil, fmt.Errorf("no event %d, see \"events\"", n)
	}
	return &events[n-1], nil
}

// resolveTask indexes into the currently displayed (filtered and sorted)
// task view, matching the row numbers the "tasks" command prints.
func (s *Session) resolveTask(ctx context.Context, args []string) (*model.Task, error) {
	if len(args) != 1 {
		return nil, errors.New("expected a task number, see \"tasks\"")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("not a task number: %q", args[0])
	}
	tasks, err := s.currentView(ctx)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(tasks) {
		return nil, fmt.Errorf("no task %d, see \"tasks\"", n)
	}
	return &tasks[n-1], nil
}

func (s *Session) requireEvent(ctx context.Context) (*model.Event, error) {
	if s.selectedEventID == "" {
		return nil, errors.New("no event selected, see \"events\" and \"use <n>\"")
	}
	event, err := s.eventStorage.GetEventByID(ctx, s.selectedEventID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch selected event: %w", err)
	}
	return event, nil
}
