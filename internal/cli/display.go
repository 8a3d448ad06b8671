package cli

import (
	"fmt"

	"github.com/chepyr/go-todo-app/internal/models"
)

func (a *App) printTask(task *models.Task) {
	status := " "
	if task.IsComplete {
		status = "x"
	}
	fmt.Fprintf(a.out, "[%s] %d. %s\n", status, task.ID, task.Title)
	if task.Description != "" {
		fmt.Fprintf(a.out, "    %s\n", task.Description)
	}
}

func (a *App) printTaskList(tasks []*models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "\nNo tasks found.")
		return
	}
	fmt.Fprintf(a.out, "\n--- All Tasks (%d) ---\n", len(tasks))
	for _, task := range tasks {
		a.printTask(task)
	}
}

func (a *App) printError(message string) {
	fmt.Fprintf(a.out, "Error: %s\n", message)
}

func (a *App) printSuccess(message string) {
	fmt.Fprintf(a.out, "%s\n", message)
}
