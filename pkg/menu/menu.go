// Package menu implements the interactive operator loop: repeated backup
// runs plus extension-set management.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"codekeep/pkg/backup"
	"codekeep/pkg/extset"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// defaultSaveDir receives backup folders when the operator accepts the default.
const defaultSaveDir = "./backup_code"

// Reader abstracts user input so tests can inject scripted answers.
type Reader interface {
	ReadString(delim byte) (string, error)
}

// Menu drives the interactive loop.
type Menu struct {
	reader     Reader
	out        io.Writer
	logger     *zap.Logger
	configPath string
	runBackup  func(backup.Options, *extset.Set, *zap.Logger) (*backup.Result, error)
}

// New builds a menu reading from stdin and writing to stdout.
func New(configPath string, logger *zap.Logger) *Menu {
	return NewWithIO(bufio.NewReader(os.Stdin), os.Stdout, configPath, logger)
}

// NewWithIO builds a menu with injected input and output, for testing.
func NewWithIO(reader Reader, out io.Writer, configPath string, logger *zap.Logger) *Menu {
	return &Menu{
		reader:     reader,
		out:        out,
		logger:     logger,
		configPath: configPath,
		runBackup:  backup.Run,
	}
}

// Run loops until the operator quits. Every iteration offers a backup run,
// the extension submenu, or exit. Input errors terminate the loop.
func (m *Menu) Run() error {
	bold := color.New(color.Bold)

	for {
		fmt.Fprintln(m.out, "====================================")
		bold.Fprintln(m.out, "codekeep — project code backup")
		fmt.Fprintln(m.out, "1. Back up a project")
		fmt.Fprintln(m.out, "2. Manage extensions")
		fmt.Fprintln(m.out, "0. Quit")

		choice, err := m.prompt("> ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := m.backupOnce(); err != nil {
				return err
			}
		case "2":
			if err := m.manageExtensions(); err != nil {
				return err
			}
		case "0":
			fmt.Fprintln(m.out, "Bye.")
			return nil
		default:
			color.New(color.FgRed).Fprintln(m.out, "Invalid selection, try again.")
		}
	}
}

// backupOnce prompts for the project and save paths and runs one backup.
// Invalid paths re-prompt; run failures are reported and return to the menu.
func (m *Menu) backupOnce() error {
	projectDir, err := m.promptProjectDir()
	if err != nil {
		return err
	}
	if projectDir == "" {
		return nil
	}

	saveDir, err := m.prompt(fmt.Sprintf("Save directory (default %s):\n> ", defaultSaveDir))
	if err != nil {
		return err
	}
	if saveDir == "" {
		saveDir = defaultSaveDir
	}

	set, err := m.loadSet()
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "\nCollecting project files, please wait...")
	result, err := m.runBackup(backup.Options{
		ProjectDir: projectDir,
		SaveDir:    saveDir,
	}, set, m.logger)
	if err != nil {
		color.New(color.FgRed).Fprintf(m.out, "Backup failed: %v\n", err)
		return nil
	}

	fmt.Fprintln(m.out, "------------------------------------")
	color.New(color.FgGreen).Fprintf(m.out, "Done. Document saved to:\n%s\n", result.DocumentPath)
	fmt.Fprintf(m.out, "Files: %d (%d unreadable)\n", result.FilesTotal, result.FilesFailed)
	fmt.Fprintln(m.out, "------------------------------------")
	return nil
}

// promptProjectDir asks for a project path until it names an existing
// directory. An empty answer cancels back to the main menu.
func (m *Menu) promptProjectDir() (string, error) {
	for {
		dir, err := m.prompt("Project path (empty to cancel):\n> ")
		if err != nil {
			return "", err
		}
		if dir == "" {
			return "", nil
		}
		info, statErr := os.Stat(dir)
		if statErr == nil && info.IsDir() {
			return dir, nil
		}
		color.New(color.FgRed).Fprintln(m.out, "Path does not exist or is not a directory, try again.")
	}
}

// manageExtensions edits the persisted extension set. Add is restricted to
// the catalog; add and remove are idempotent.
func (m *Menu) manageExtensions() error {
	for {
		set, err := m.loadSet()
		if err != nil {
			return err
		}

		fmt.Fprintln(m.out, "------------------------------------")
		fmt.Fprintf(m.out, "Active extensions: %s\n", strings.Join(set.Extensions(), " "))
		fmt.Fprintf(m.out, "Catalog: %s\n", strings.Join(extset.Catalog(), " "))
		fmt.Fprintln(m.out, "1. Add extension")
		fmt.Fprintln(m.out, "2. Remove extension")
		fmt.Fprintln(m.out, "3. Reset to full catalog")
		fmt.Fprintln(m.out, "0. Back")

		choice, err := m.prompt("> ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			ext, err := m.prompt("Extension to add (e.g. .py):\n> ")
			if err != nil {
				return err
			}
			if addErr := set.Add(ext); addErr != nil {
				color.New(color.FgRed).Fprintln(m.out, addErr.Error())
				continue
			}
			if err := m.saveSet(set); err != nil {
				return err
			}
		case "2":
			ext, err := m.prompt("Extension to remove:\n> ")
			if err != nil {
				return err
			}
			set.Remove(ext)
			if err := m.saveSet(set); err != nil {
				return err
			}
		case "3":
			if err := m.saveSet(extset.Default()); err != nil {
				return err
			}
		case "0":
			return nil
		default:
			color.New(color.FgRed).Fprintln(m.out, "Invalid selection, try again.")
		}
	}
}

func (m *Menu) loadSet() (*extset.Set, error) {
	return extset.Load(m.configPath)
}

func (m *Menu) saveSet(set *extset.Set) error {
	if err := set.Save(m.configPath); err != nil {
		return err
	}
	m.logger.Info("Updated extension set",
		zap.String("config", m.configPath),
		zap.Strings("extensions", set.Extensions()))
	return nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
