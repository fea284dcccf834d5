// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

// DefaultBlacklist lists the fully qualified names of routines known to be impure: input/output, randomness,
// wall-clock time, process and goroutine control, and disposal of operating system resources.
// Names are in the format of ssa.Function.String(), e.g. "time.Now" or "(*os.File).Close".
var DefaultBlacklist = []string{
	// builtins writing to standard error
	"print",
	"println",

	// time
	"time.Now",
	"time.Since",
	"time.Until",
	"time.Sleep",
	"time.After",
	"time.AfterFunc",
	"time.Tick",
	"time.NewTimer",
	"time.NewTicker",
	"(*time.Timer).Reset",
	"(*time.Timer).Stop",
	"(*time.Ticker).Reset",
	"(*time.Ticker).Stop",

	// randomness
	"math/rand.Int",
	"math/rand.Intn",
	"math/rand.Int31",
	"math/rand.Int31n",
	"math/rand.Int63",
	"math/rand.Int63n",
	"math/rand.Uint32",
	"math/rand.Uint64",
	"math/rand.Float32",
	"math/rand.Float64",
	"math/rand.Perm",
	"math/rand.Shuffle",
	"math/rand.Read",
	"math/rand.Seed",
	"math/rand.ExpFloat64",
	"math/rand.NormFloat64",
	"math/rand/v2.Int",
	"math/rand/v2.IntN",
	"math/rand/v2.Float64",
	"math/rand/v2.Perm",
	"math/rand/v2.Shuffle",
	"crypto/rand.Read",
	"crypto/rand.Int",
	"crypto/rand.Prime",

	// formatted input/output
	"fmt.Print",
	"fmt.Printf",
	"fmt.Println",
	"fmt.Fprint",
	"fmt.Fprintf",
	"fmt.Fprintln",
	"fmt.Scan",
	"fmt.Scanf",
	"fmt.Scanln",
	"fmt.Fscan",
	"fmt.Fscanf",
	"fmt.Fscanln",

	// logging
	"log.Print",
	"log.Printf",
	"log.Println",
	"log.Fatal",
	"log.Fatalf",
	"log.Fatalln",
	"log.Panic",
	"log.Panicf",
	"log.Panicln",
	"log.Output",
	"log/slog.Debug",
	"log/slog.Info",
	"log/slog.Warn",
	"log/slog.Error",
	"log/slog.Log",

	// file system and process
	"os.Open",
	"os.OpenFile",
	"os.Create",
	"os.CreateTemp",
	"os.MkdirTemp",
	"os.Remove",
	"os.RemoveAll",
	"os.Rename",
	"os.Mkdir",
	"os.MkdirAll",
	"os.ReadFile",
	"os.WriteFile",
	"os.ReadDir",
	"os.Stat",
	"os.Lstat",
	"os.Chmod",
	"os.Chown",
	"os.Chdir",
	"os.Getwd",
	"os.Truncate",
	"os.Exit",
	"os.Getenv",
	"os.LookupEnv",
	"os.Setenv",
	"os.Unsetenv",
	"os.Clearenv",
	"os.Environ",
	"os.Getpid",
	"os.Hostname",
	"(*os.File).Read",
	"(*os.File).Write",
	"(*os.File).WriteString",
	"(*os.File).Close",
	"(*os.File).Sync",
	"(*os.Process).Kill",
	"(*os.Process).Release",
	"os/exec.Command",
	"os/exec.CommandContext",
	"(*os/exec.Cmd).Run",
	"(*os/exec.Cmd).Start",
	"(*os/exec.Cmd).Output",
	"(*os/exec.Cmd).CombinedOutput",
	"syscall.Exec",
	"syscall.ForkExec",
	"syscall.Kill",
	"syscall.Syscall",
	"io/ioutil.ReadFile",
	"io/ioutil.WriteFile",
	"io/ioutil.ReadAll",

	// network
	"net.Dial",
	"net.DialTimeout",
	"net.Listen",
	"net/http.Get",
	"net/http.Post",
	"net/http.Head",
	"net/http.PostForm",
	"net/http.ListenAndServe",
	"(*net/http.Client).Do",

	// goroutine control and synchronization
	"runtime.Gosched",
	"runtime.Goexit",
	"runtime.GC",
	"runtime.LockOSThread",
	"runtime.UnlockOSThread",
	"runtime.GOMAXPROCS",
	"(*sync.Mutex).Lock",
	"(*sync.Mutex).Unlock",
	"(*sync.RWMutex).Lock",
	"(*sync.RWMutex).Unlock",
	"(*sync.RWMutex).RLock",
	"(*sync.RWMutex).RUnlock",
	"(*sync.WaitGroup).Add",
	"(*sync.WaitGroup).Done",
	"(*sync.WaitGroup).Wait",
	"(*sync.Once).Do",
	"(*sync.Cond).Wait",
	"(*sync.Cond).Signal",
	"(*sync.Cond).Broadcast",

	// unmanaged resources
	"runtime.SetFinalizer",
	"runtime.KeepAlive",
}

var defaultBlacklistSet = func() map[string]bool {
	m := make(map[string]bool, len(DefaultBlacklist))
	for _, name := range DefaultBlacklist {
		m[name] = true
	}
	return m
}()

// DefaultKnownPure lists external routines that compute their result from their arguments only. Calls to these
// routines are pure leaves of the dependency graph instead of unknown ones.
var DefaultKnownPure = []CodeIdentifier{
	{Package: "^(math|math/bits|math/cmplx|strings|strconv|unicode|unicode/utf8|unicode/utf16|errors)$"},
	{Package: "^fmt$", Method: "^(Sprint|Sprintf|Sprintln|Errorf|Append|Appendf|Appendln)$"},
	{Package: "^(path|path/filepath)$", Method: "^(Base|Clean|Dir|Ext|IsAbs|Join|Split)$"},
}

var defaultKnownPure = func() []CodeIdentifier {
	ids := make([]CodeIdentifier, len(DefaultKnownPure))
	for i, cid := range DefaultKnownPure {
		ids[i] = compileRegexes(cid)
	}
	return ids
}()
