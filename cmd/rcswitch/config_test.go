package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/alittlebrighter/rcswitch"
)

func TestSetupLoggingRestoresStderrOnClose(t *testing.T) {
	dir, err := ioutil.TempDir("", "rcswitch")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	defer logrus.SetOutput(ioutil.Discard)
	defer logrus.SetLevel(logrus.InfoLevel)

	path := filepath.Join(dir, "rcswitch.log")
	closer, err := setupLogging(rcswitch.LogConfig{Level: "info", File: path})
	if err != nil {
		t.Fatal(err)
	}
	if closer == nil {
		t.Fatal("no closer returned for a log file")
	}

	logrus.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	if out := logrus.StandardLogger().Out; out != os.Stderr {
		t.Errorf("logger still writes to %v after the log file was closed", out)
	}

	dat, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dat), "written to file") {
		t.Errorf("log file is missing the entry: %q", dat)
	}
}

func TestSetupLoggingWithoutFile(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	closer, err := setupLogging(rcswitch.LogConfig{Level: "debug"})
	if err != nil || closer != nil {
		t.Fatalf("setupLogging() = %v, %v", closer, err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logrus.GetLevel())
	}

	if _, err := setupLogging(rcswitch.LogConfig{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
