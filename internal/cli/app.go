package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chepyr/go-todo-app/internal/service"
	"github.com/chepyr/go-todo-app/internal/store"
)

// The CLI phase has no user accounts; every task belongs to owner 0.
const cliOwnerID = 0

// App is the interactive menu loop over a TaskService. Input and output are
// injected so tests can script a session.
type App struct {
	tasks *service.TaskService
	in    *bufio.Scanner
	out   io.Writer
}

func New(tasks *service.TaskService, in io.Reader, out io.Writer) *App {
	return &App{
		tasks: tasks,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run drives the menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	for {
		a.printMenu()
		choice, ok := a.readChoice()
		if !ok {
			choice = choiceExit
		}

		switch choice {
		case choiceAdd:
			a.handleAdd(ctx)
		case choiceView:
			a.handleView(ctx)
		case choiceUpdate:
			a.handleUpdate(ctx)
		case choiceDelete:
			a.handleDelete(ctx)
		case choiceMarkComplete:
			a.handleSetComplete(ctx, true)
		case choiceMarkIncomplete:
			a.handleSetComplete(ctx, false)
		case choiceExit:
			fmt.Fprintln(a.out, "Goodbye!")
			return
		}
	}
}

func (a *App) handleAdd(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Add New Task ---")
	title, ok := a.prompt("Enter task title: ")
	if !ok {
		return
	}
	description, _ := a.prompt("Enter task description (optional): ")

	task, err := a.tasks.Create(ctx, cliOwnerID, title, description)
	if err != nil {
		a.printError(err.Error())
		return
	}
	a.printSuccess(fmt.Sprintf("Task created successfully! (ID: %d)", task.ID))
	a.printTask(task)
}

func (a *App) handleView(ctx context.Context) {
	tasks, err := a.tasks.List(ctx, cliOwnerID)
	if err != nil {
		a.printError(err.Error())
		return
	}
	a.printTaskList(tasks)
}

func (a *App) handleUpdate(ctx context.Context) {
	id, ok := a.readTaskID()
	if !ok {
		return
	}

	current, err := a.tasks.Get(ctx, cliOwnerID, id)
	if err != nil {
		a.printTaskError(err, id)
		return
	}

	fmt.Fprintln(a.out, "\n--- Update Task ---")
	fmt.Fprintf(a.out, "Current title: %s\n", current.Title)
	fmt.Fprintf(a.out, "Current description: %s\n", current.Description)
	fmt.Fprintln(a.out, "\n(Press Enter to keep current value)")

	newTitle, _ := a.prompt("Enter new title: ")
	newDescription, _ := a.prompt("Enter new description: ")

	// Blank input keeps the prior value.
	var titlePtr, descriptionPtr *string
	if newTitle != "" {
		titlePtr = &newTitle
	}
	if newDescription != "" {
		descriptionPtr = &newDescription
	}
	if titlePtr == nil && descriptionPtr == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return
	}

	task, err := a.tasks.Update(ctx, cliOwnerID, id, titlePtr, descriptionPtr)
	if err != nil {
		a.printTaskError(err, id)
		return
	}
	a.printSuccess("Task updated successfully!")
	a.printTask(task)
}

func (a *App) handleDelete(ctx context.Context) {
	id, ok := a.readTaskID()
	if !ok {
		return
	}
	if !a.confirm(fmt.Sprintf("Delete task %d?", id)) {
		fmt.Fprintln(a.out, "Deletion cancelled.")
		return
	}

	if err := a.tasks.Delete(ctx, cliOwnerID, id); err != nil {
		a.printTaskError(err, id)
		return
	}
	a.printSuccess("Task deleted successfully!")
}

func (a *App) handleSetComplete(ctx context.Context, complete bool) {
	id, ok := a.readTaskID()
	if !ok {
		return
	}

	task, err := a.tasks.SetComplete(ctx, cliOwnerID, id, complete)
	if err != nil {
		a.printTaskError(err, id)
		return
	}
	if complete {
		a.printSuccess("Task marked complete!")
	} else {
		a.printSuccess("Task marked incomplete!")
	}
	a.printTask(task)
}

func (a *App) printTaskError(err error, id int64) {
	if errors.Is(err, store.ErrTaskNotFound) {
		a.printError(fmt.Sprintf("Task with ID %d not found", id))
		return
	}
	a.printError(err.Error())
}
