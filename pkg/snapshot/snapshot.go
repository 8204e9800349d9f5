package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateEnv rewrites every snapshot file when set to a non-empty value
const UpdateEnv = "UPDATE_SNAPSHOTS"

var (
	lock      sync.Mutex
	funcCount = make(map[string]int)
)

// ValidateSnapshot compares the indented JSON of obj with testdata/<func>-<n>.json
// A missing snapshot file is written and the check passes.
// depth is the number of helper frames between the test and this call.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	pc, _, _, _ := runtime.Caller(1 + depth)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	lock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	lock.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || (err == nil && os.Getenv(UpdateEnv) != "") {
		write(t, filename, objJSON)
		return
	}
	require.NoError(t, err)

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func write(t *testing.T, filename string, b []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, append(b, '\n'), 0644))
}
