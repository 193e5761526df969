package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cardsharp/drainvault/internal/session"
)

type ResetCmd struct {
	Save  string `default:"drainvault.json" help:"Path to the session save file"`
	Force bool   `short:"f" help:"Skip the confirmation prompt"`
}

func (c *ResetCmd) Run() error {
	store := session.NewStore(c.Save)
	if !store.Exists() {
		fmt.Printf("No save file at %s\n", store.Path())
		return nil
	}

	if !c.Force {
		fmt.Printf("Delete save file %s? This cannot be undone. (y/n) ", store.Path())
		reader := bufio.NewReader(os.Stdin)
		choice, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !isYes(strings.TrimSpace(choice)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Delete(); err != nil {
		return err
	}
	fmt.Println("Save file deleted.")
	return nil
}
