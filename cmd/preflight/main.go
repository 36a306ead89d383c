// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	userKey := strings.TrimSpace(os.Getenv("PUSHOVER_USER_KEY"))
	appToken := strings.TrimSpace(os.Getenv("PUSHOVER_APP_TOKEN"))
	threshold := strings.TrimSpace(os.Getenv("WATCHDOG_THRESHOLD"))
	interval := strings.TrimSpace(os.Getenv("WATCHDOG_INTERVAL"))
	diskPath := strings.TrimSpace(os.Getenv("WATCHDOG_DISK_PATH"))

	if userKey == "" {
		fail("PUSHOVER_USER_KEY is empty (no alert can be delivered).")
	}
	if appToken == "" {
		fail("PUSHOVER_APP_TOKEN is empty (Pushover will reject every request).")
	}
	ok("Pushover credentials present")

	if threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil || v <= 0 || v > 1 {
			fail("WATCHDOG_THRESHOLD must be a fraction in (0, 1], e.g. 0.8; got " + threshold)
		}
		ok("WATCHDOG_THRESHOLD=" + threshold)
	} else {
		warn("WATCHDOG_THRESHOLD empty; default 0.80 will be used.")
	}

	if interval != "" {
		if n, err := strconv.Atoi(interval); err != nil || n <= 0 {
			fail("WATCHDOG_INTERVAL must be a positive number of seconds; got " + interval)
		}
		ok("WATCHDOG_INTERVAL=" + interval)
	} else {
		warn("WATCHDOG_INTERVAL empty; default 60 will be used.")
	}

	if diskPath != "" {
		if _, err := os.Stat(diskPath); err != nil {
			fail("WATCHDOG_DISK_PATH does not exist: " + diskPath)
		}
		ok("WATCHDOG_DISK_PATH=" + diskPath)
	} else {
		warn("WATCHDOG_DISK_PATH empty; default /home will be used.")
	}

	ok("preflight passed")
}
