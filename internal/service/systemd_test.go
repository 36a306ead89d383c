package service

import (
	"os"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, *[][]string) {
	t.Helper()
	var calls [][]string
	m := &Manager{
		Home: t.TempDir(),
		Exe:  "/usr/local/bin/watchdog",
		run: func(args ...string) error {
			calls = append(calls, args)
			return nil
		},
	}
	return m, &calls
}

func TestUnitText(t *testing.T) {
	m, _ := newTestManager(t)
	text := m.UnitText()

	if !strings.Contains(text, "ExecStart=/usr/local/bin/watchdog") {
		t.Fatalf("unit missing exec line:\n%s", text)
	}
	if !strings.Contains(text, "EnvironmentFile="+m.EnvPath()) {
		t.Fatalf("unit missing env file:\n%s", text)
	}
	if !strings.Contains(text, "WantedBy=default.target") {
		t.Fatalf("user unit should install into default.target:\n%s", text)
	}
}

func TestInstall(t *testing.T) {
	m, calls := newTestManager(t)

	if err := m.Install(); err != nil {
		t.Fatalf("install: %v", err)
	}

	if _, err := os.Stat(m.UnitPath()); err != nil {
		t.Fatalf("unit not written: %v", err)
	}

	fi, err := os.Stat(m.EnvPath())
	if err != nil {
		t.Fatalf("env file not written: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("env file mode %v, want 0600 (holds secrets)", fi.Mode().Perm())
	}

	if len(*calls) != 2 {
		t.Fatalf("want daemon-reload + enable, got %v", *calls)
	}
	if got := strings.Join((*calls)[1], " "); got != "--user enable --now "+UnitName {
		t.Fatalf("enable call: %q", got)
	}
}

func TestInstall_KeepsExistingEnv(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Install(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.EnvPath(), []byte("PUSHOVER_USER_KEY=abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := m.Install(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(m.EnvPath())
	if !strings.Contains(string(b), "abc") {
		t.Fatal("reinstall overwrote user-edited env file")
	}
}

func TestUninstall(t *testing.T) {
	m, calls := newTestManager(t)
	if err := m.Install(); err != nil {
		t.Fatal(err)
	}
	*calls = nil

	if err := m.Uninstall(); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if _, err := os.Stat(m.UnitPath()); !os.IsNotExist(err) {
		t.Fatal("unit file still present")
	}
	if _, err := os.Stat(m.EnvPath()); err != nil {
		t.Fatal("env file must survive uninstall")
	}
	if got := strings.Join((*calls)[0], " "); got != "--user disable --now "+UnitName {
		t.Fatalf("disable call: %q", got)
	}
}
