package cli

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	choiceAdd = iota + 1
	choiceView
	choiceUpdate
	choiceDelete
	choiceMarkComplete
	choiceMarkIncomplete
	choiceExit
)

func (a *App) printMenu() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
	fmt.Fprintln(a.out, strings.Repeat(" ", 15)+"TODO APPLICATION")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
	fmt.Fprintln(a.out, "1. Add Task")
	fmt.Fprintln(a.out, "2. View All Tasks")
	fmt.Fprintln(a.out, "3. Update Task")
	fmt.Fprintln(a.out, "4. Delete Task")
	fmt.Fprintln(a.out, "5. Mark Complete")
	fmt.Fprintln(a.out, "6. Mark Incomplete")
	fmt.Fprintln(a.out, "7. Exit")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
}

// readChoice keeps prompting until the user enters a number between 1 and 7.
// The second return value is false when input has ended.
func (a *App) readChoice() (int, bool) {
	for {
		line, ok := a.prompt("Enter your choice (1-7): ")
		if !ok {
			return 0, false
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < choiceAdd || choice > choiceExit {
			fmt.Fprintln(a.out, "Invalid choice. Please enter a number between 1 and 7.")
			continue
		}
		return choice, true
	}
}

// readTaskID keeps prompting until the user enters a positive integer id.
func (a *App) readTaskID() (int64, bool) {
	for {
		line, ok := a.prompt("Enter task ID: ")
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil || id < 1 {
			fmt.Fprintln(a.out, "Invalid input. Please enter a valid task ID (positive integer).")
			continue
		}
		return id, true
	}
}

func (a *App) confirm(message string) bool {
	answer, ok := a.prompt(message + " (Y/N): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// prompt prints the message and reads one trimmed line. The second return
// value is false when input has ended.
func (a *App) prompt(message string) (string, bool) {
	fmt.Fprint(a.out, message)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}
