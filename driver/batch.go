// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

// RunBatch splits argv into jobs at "--" delimiters and runs them in order.
// argv[0] (the program name) is retained as argument 0 of every job. A
// trailing job after the last delimiter still runs; segments containing
// only the program name are skipped. The result is the most severe code any
// job produced, or Success for an empty batch.
func (d *Driver) RunBatch(argv []string) ResultCode {
	result := Success
	if len(argv) == 0 {
		return result
	}

	args := []string{argv[0]}
	for _, arg := range argv[1:] {
		if arg != "--" {
			args = append(args, arg)
			continue
		}
		if len(args) > 1 {
			result = max(result, d.ProcessCommand(args))
			args = args[:1]
		}
	}
	if len(args) > 1 {
		result = max(result, d.ProcessCommand(args))
	}
	return result
}
