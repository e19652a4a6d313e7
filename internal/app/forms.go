package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/agalitsyn/secret"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/go-playground/validator/v10"

	"github.com/agalitsyn/meetup-tasks/internal/model"
	"github.com/agalitsyn/meetup-tasks/internal/validate"
)

type taskForm struct {
	Title       string `validate:"required"`
	Description string
	AssignedTo  string `validate:"required"`
	Phone       string `validate:"required,phone"`
	Deadline    string `validate:"required,dateparse"`
	Priority    string `validate:"omitempty,taskpriority"`
}

type eventForm struct {
	Name string `validate:"required"`
	Date string `validate:"required,dateparse"`
}

// Inline field-level messages, one per failed field. Form input errors are a
// separate, simpler concern from CSV import diagnostics: they block the
// action synchronously and are never batched.
var formMessages = map[string]string{
	"Title.required":        "Title is required",
	"AssignedTo.required":   "Assignee name is required",
	"Phone.required":        "Phone is required",
	"Phone.phone":           "Invalid phone number",
	"Deadline.required":     "Deadline is required",
	"Deadline.dateparse":    "Invalid date, use YYYY-MM-DD or an ISO timestamp",
	"Priority.taskpriority": "Priority must be low, medium or high",
	"Name.required":         "Event name is required",
	"Date.required":         "Date is required",
	"Date.dateparse":        "Invalid date, use YYYY-MM-DD or an ISO timestamp",
}

type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validate.Phone(fl.Field().String())
	})
	v.RegisterValidation("dateparse", func(fl validator.FieldLevel) bool {
		return validate.IsValidDate(fl.Field().String())
	})
	v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseTaskPriority(fl.Field().String())
		return ok
	})
	return &formValidator{v: v}
}

// fieldErrors maps validation failures to per-field messages, first failure
// per field wins.
func (f *formValidator) fieldErrors(form any) []string {
	err := f.v.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var msgs []string
	seen := make(map[string]bool)
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		if msg, ok := formMessages[fe.Field()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return msgs
}

func (s *Session) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	line, ok := s.readLine(ctx)
	return strings.TrimSpace(line), ok
}

// promptDefault reads a field value, keeping current when the line is left
// empty.
func (s *Session) promptDefault(ctx context.Context, label string, current string) (string, bool) {
	fmt.Fprintf(s.out, "%s [%s]: ", label, current)
	line, ok := s.readLine(ctx)
	if !ok {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, true
	}
	return line, true
}

func (s *Session) addTaskCommand(ctx context.Context) error {
	event, err := s.requireEvent(ctx)
	if err != nil {
		return err
	}

	for {
		var form taskForm
		var ok bool
		if form.Title, ok = s.prompt(ctx, "title"); !ok {
			return nil
		}
		if form.Description, ok = s.prompt(ctx, "description (optional)"); !ok {
			return nil
		}
		if form.AssignedTo, ok = s.prompt(ctx, "assigned to"); !ok {
			return nil
		}
		if form.Phone, ok = s.prompt(ctx, "phone"); !ok {
			return nil
		}
		if form.Deadline, ok = s.prompt(ctx, "deadline"); !ok {
			return nil
		}
		if form.Priority, ok = s.prompt(ctx, "priority [medium]"); !ok {
			return nil
		}

		if msgs := s.forms.fieldErrors(form); len(msgs) > 0 {
			for _, msg := range msgs {
				fmt.Fprintln(s.out, color.RedString("  %s", msg))
			}
			answer, ok := s.prompt(ctx, "try again? [y/N]")
			if !ok || strings.ToLower(answer) != "y" {
				fmt.Fprintln(s.out, "task not created")
				return nil
			}
			continue
		}

		deadline, err := validate.ParseDate(form.Deadline)
		if err != nil {
			return fmt.Errorf("could not parse deadline: %w", err)
		}
		priority := model.TaskPriorityMedium
		if form.Priority != "" {
			priority, _ = model.ParseTaskPriority(form.Priority)
		}

		task := model.NewTask(event.ID, form.Title, form.AssignedTo)
		task.Description = form.Description
		task.Phone = form.Phone
		task.Deadline = deadline
		task.Priority = priority

		if err := s.taskStorage.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("could not create task: %w", err)
		}
		lgr.Printf("DEBUG created task id=%s phone=%s", task.ID, secret.NewString(task.Phone))
		fmt.Fprintf(s.out, "created %q\n", task.Title)
		return nil
	}
}

// editTaskCommand reprompts every field of an existing task, prefilled with
// its current values.
func (s *Session) editTaskCommand(ctx context.Context, args []string) error {
	current, err := s.resolveTask(ctx, args)
	if err != nil {
		return err
	}

	for {
		var form taskForm
		var ok bool
		if form.Title, ok = s.promptDefault(ctx, "title", current.Title); !ok {
			return nil
		}
		if form.Description, ok = s.promptDefault(ctx, "description", current.Description); !ok {
			return nil
		}
		if form.AssignedTo, ok = s.promptDefault(ctx, "assigned to", current.AssignedTo); !ok {
			return nil
		}
		if form.Phone, ok = s.promptDefault(ctx, "phone", current.Phone); !ok {
			return nil
		}
		if form.Deadline, ok = s.promptDefault(ctx, "deadline", current.Deadline.Format("2006-01-02 15:04:05")); !ok {
			return nil
		}
		if form.Priority, ok = s.promptDefault(ctx, "priority", string(current.Priority)); !ok {
			return nil
		}

		if msgs := s.forms.fieldErrors(form); len(msgs) > 0 {
			for _, msg := range msgs {
				fmt.Fprintln(s.out, color.RedString("  %s", msg))
			}
			answer, ok := s.prompt(ctx, "try again? [y/N]")
			if !ok || strings.ToLower(answer) != "y" {
				fmt.Fprintln(s.out, "task not updated")
				return nil
			}
			continue
		}

		deadline, err := validate.ParseDate(form.Deadline)
		if err != nil {
			return fmt.Errorf("could not parse deadline: %w", err)
		}
		priority, _ := model.ParseTaskPriority(form.Priority)

		updated := *current
		updated.Title = form.Title
		updated.Description = form.Description
		updated.AssignedTo = form.AssignedTo
		updated.Phone = form.Phone
		updated.Deadline = deadline
		updated.Priority = priority

		if err := s.taskStorage.UpdateTask(ctx, &updated); err != nil {
			return fmt.Errorf("could not update task: %w", err)
		}
		lgr.Printf("DEBUG updated task id=%s phone=%s", updated.ID, secret.NewString(updated.Phone))
		fmt.Fprintf(s.out, "updated %q\n", updated.Title)
		return nil
	}
}

func (s *Session) addEventCommand(ctx context.Context) error {
	var form eventForm
	var ok bool
	if form.Name, ok = s.prompt(ctx, "event name"); !ok {
		return nil
	}
	if form.Date, ok = s.prompt(ctx, "date"); !ok {
		return nil
	}

	if msgs := s.forms.fieldErrors(form); len(msgs) > 0 {
		for _, msg := range msgs {
			fmt.Fprintln(s.out, color.RedString("  %s", msg))
		}
		fmt.Fprintln(s.out, "event not created")
		return nil
	}

	date, err := validate.ParseDate(form.Date)
	if err != nil {
		return fmt.Errorf("could not parse date: %w", err)
	}

	event := model.NewEvent(form.Name, date)
	if err := s.eventStorage.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("could not create event: %w", err)
	}
	lgr.Printf("DEBUG created event id=%s", event.ID)

	// first event of the session becomes current right away
	if s.selectedEventID == "" {
		s.selectedEventID = event.ID
	}
	fmt.Fprintf(s.out, "created event %q\n", event.Name)
	return nil
}
