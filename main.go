package main

import (
	"os"

	"github.com/DirGroup-Admin/DirGroup-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
