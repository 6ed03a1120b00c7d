package log

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	"github.com/onsi/gomega/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// New returns a null logger hook and entry suitable for passing to functions
// under test and asserting on afterwards.  The logger captures all levels.
func New() (*test.Hook, *logrus.Entry) {
	logger, h := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	return h, logrus.NewEntry(logger)
}

// AssertLoggingOutput matches the entries captured on h against expected, one
// matcher map per entry.  Each map's keys address the entry's message
// ("msg"), level ("level") or a structured field.
func AssertLoggingOutput(h *test.Hook, expected []map[string]types.GomegaMatcher) error {
	entries := h.AllEntries()

	if len(entries) != len(expected) {
		return fmt.Errorf("got %d log entries, expected %d", len(entries), len(expected))
	}

	for i, entry := range entries {
		fields := map[string]interface{}{
			"msg":   entry.Message,
			"level": entry.Level,
		}
		for k, v := range entry.Data {
			fields[k] = v
		}

		for k, matcher := range expected[i] {
			v, found := fields[k]
			if !found {
				return fmt.Errorf("log #%d: field %q not found", i, k)
			}

			ok, err := matcher.Match(v)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("log #%d: %s", i, matcher.FailureMessage(v))
			}
		}
	}

	return nil
}
