package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const UnitName = "watchdog.service"

// Manager installs the watchdog as a systemd *user* service, so no root is
// needed and credentials stay in the user's own config dir.
type Manager struct {
	Home string // user home dir
	Exe  string // absolute path of the watchdog binary

	// run executes a systemctl invocation; swapped out in tests.
	run func(args ...string) error
}

func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("find executable: %w", err)
	}
	return &Manager{
		Home: home,
		Exe:  exe,
		run: func(args ...string) error {
			cmd := exec.Command("systemctl", args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
	}, nil
}

// AppDir holds the env file with the Pushover credentials.
func (m *Manager) AppDir() string {
	return filepath.Join(m.Home, ".config", "pushover-watchdog")
}

func (m *Manager) EnvPath() string {
	return filepath.Join(m.AppDir(), "env")
}

func (m *Manager) UnitPath() string {
	return filepath.Join(m.Home, ".config", "systemd", "user", UnitName)
}

func (m *Manager) UnitText() string {
	return fmt.Sprintf(`[Unit]
Description=Pushover resource watchdog
After=network-online.target

[Service]
EnvironmentFile=%s
ExecStart=%s
Restart=on-failure
RestartSec=10

[Install]
WantedBy=default.target
`, m.EnvPath(), m.Exe)
}

// Install writes the unit and env file, then enables and starts the service.
// An existing env file is left alone so edited credentials survive
// reinstalls.
func (m *Manager) Install() error {
	if err := os.MkdirAll(filepath.Dir(m.UnitPath()), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(m.AppDir(), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(m.UnitPath(), []byte(m.UnitText()), 0o644); err != nil {
		return fmt.Errorf("write unit: %w", err)
	}

	if _, err := os.Stat(m.EnvPath()); os.IsNotExist(err) {
		env := "PUSHOVER_USER_KEY=\nPUSHOVER_APP_TOKEN=\n"
		if err := os.WriteFile(m.EnvPath(), []byte(env), 0o600); err != nil {
			return fmt.Errorf("write env file: %w", err)
		}
	}

	if err := m.run("--user", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	if err := m.run("--user", "enable", "--now", UnitName); err != nil {
		return fmt.Errorf("enable service: %w", err)
	}
	return nil
}

// Uninstall stops and disables the service and removes the unit file. The
// env file is kept: it holds user-entered secrets.
func (m *Manager) Uninstall() error {
	if err := m.run("--user", "disable", "--now", UnitName); err != nil {
		return fmt.Errorf("disable service: %w", err)
	}
	if err := os.Remove(m.UnitPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove unit: %w", err)
	}
	if err := m.run("--user", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	return nil
}
