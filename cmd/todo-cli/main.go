package main

import (
	"context"
	"os"

	"github.com/chepyr/go-todo-app/internal/cli"
	"github.com/chepyr/go-todo-app/internal/service"
	"github.com/chepyr/go-todo-app/internal/store"
)

func main() {
	tasks := service.NewTaskService(store.NewMemoryTaskStore())
	app := cli.New(tasks, os.Stdin, os.Stdout)
	app.Run(context.Background())
}
