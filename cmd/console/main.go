// Command console is an interactive REPL for building and driving a
// circuit by hand: add components from the registry, wire them,
// tick/autotick, and inspect outputs. Grounded on the teacher's
// interactive command-host shape (a line-at-a-time read/tokenize/
// dispatch loop) and spec.md's public API surface (§4.3, §6).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"circuitgo/circuit"
	"circuitgo/component"
	_ "circuitgo/examples/components"
	_ "circuitgo/examples/components/streamsource"
	"circuitgo/registry"
	"circuitgo/x/shmring"
)

type session struct {
	ci   *circuit.Circuit
	byID map[string]*component.Component
}

func newSession() *session {
	return &session{ci: circuit.New(), byID: map[string]*component.Component{}}
}

func main() {
	sess := newSession()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("circuitgo console — type 'help' for commands, 'quit' to exit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			sess.ci.StopAutoTick()
			return
		}
		sess.dispatch(args)
	}
}

func (s *session) dispatch(args []string) {
	switch args[0] {
	case "help":
		printHelp()
	case "types":
		for _, t := range registry.Types() {
			fmt.Println(" ", t)
		}
	case "add":
		s.cmdAdd(args[1:])
	case "connect":
		s.cmdConnect(args[1:])
	case "disconnect":
		s.cmdDisconnect(args[1:])
	case "describe":
		s.cmdDescribe(args[1:])
	case "tick":
		if err := s.ci.Tick(); err != nil {
			fmt.Println("tick error:", err)
		}
	case "setbuffers":
		s.cmdSetInt(args[1:], s.ci.SetBufferCount)
	case "setthreads":
		s.cmdSetInt(args[1:], s.ci.SetThreadCount)
	case "autotick":
		s.cmdAutoTick(args[1:])
	case "ring":
		s.cmdRing(args[1:])
	default:
		fmt.Println("unknown command:", args[0], "(try 'help')")
	}
}

func printHelp() {
	fmt.Println(`commands:
  types                               list registered component types
  add <id> <type> [key=value ...]     build and add a component
  connect <fromId> <out> <toId> <in>  wire an output to an input
  disconnect <id>                     remove every wire touching id
  describe <id>                       print port counts and names
  tick                                 run one tick
  setbuffers <n>                      reconfigure buffer count
  setthreads <n>                      reconfigure thread count
  autotick start|stop|pause|resume    control the auto-tick driver
  ring create <size>                  allocate a registered byte ring, prints its handle
  ring write <handle> <text>           push bytes into a registered ring
  ring close <handle>                  drop a ring from the registry
  quit                                 exit`)
}

func (s *session) cmdAdd(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: add <id> <type> [key=value ...]")
		return
	}
	id, typ := args[0], args[1]
	if _, exists := s.byID[id]; exists {
		fmt.Println("id already in use:", id)
		return
	}
	builder, ok := registry.Lookup(typ)
	if !ok {
		fmt.Println("unknown type:", typ)
		return
	}
	params := parseParams(args[2:])
	comp, err := builder(params)
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	if ok, err := s.ci.AddComponent(comp); !ok {
		fmt.Println("add error:", err)
		return
	}
	s.byID[id] = comp
	fmt.Printf("added %s (%s): %d in, %d out\n", id, typ, comp.InputCount(), comp.OutputCount())
}

func (s *session) cmdConnect(args []string) {
	if len(args) != 4 {
		fmt.Println("usage: connect <fromId> <outIdx> <toId> <inIdx>")
		return
	}
	from, ok := s.byID[args[0]]
	if !ok {
		fmt.Println("unknown id:", args[0])
		return
	}
	to, ok := s.byID[args[2]]
	if !ok {
		fmt.Println("unknown id:", args[2])
		return
	}
	fromOut, err1 := strconv.Atoi(args[1])
	toIn, err2 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil {
		fmt.Println("port indices must be integers")
		return
	}
	if ok, err := s.ci.ConnectOutToIn(from, fromOut, to, toIn); !ok {
		fmt.Println("connect error:", err)
	}
}

func (s *session) cmdDisconnect(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: disconnect <id>")
		return
	}
	comp, ok := s.byID[args[0]]
	if !ok {
		fmt.Println("unknown id:", args[0])
		return
	}
	if ok, err := s.ci.DisconnectComponent(comp); !ok {
		fmt.Println("disconnect error:", err)
	}
}

func (s *session) cmdDescribe(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: describe <id>")
		return
	}
	comp, ok := s.byID[args[0]]
	if !ok {
		fmt.Println("unknown id:", args[0])
		return
	}
	for i := 0; i < comp.InputCount(); i++ {
		fmt.Printf("  in[%d] %s\n", i, comp.InputName(i))
	}
	for i := 0; i < comp.OutputCount(); i++ {
		fmt.Printf("  out[%d] %s = %v\n", i, comp.OutputName(i), comp.OutputValue(0, i))
	}
}

func (s *session) cmdSetInt(args []string, set func(int)) {
	if len(args) != 1 {
		fmt.Println("usage: <command> <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("not an integer:", args[0])
		return
	}
	set(n)
}

func (s *session) cmdAutoTick(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: autotick start|stop|pause|resume")
		return
	}
	switch args[0] {
	case "start":
		s.ci.StartAutoTick()
	case "stop":
		s.ci.StopAutoTick()
	case "pause":
		s.ci.PauseAutoTick()
	case "resume":
		s.ci.ResumeAutoTick()
	default:
		fmt.Println("unknown autotick subcommand:", args[0])
	}
}

// cmdRing manages shmring.Ring instances shared with component builders
// through the handle registry, since a ring created here has no Go
// reference a JSON param map (or "add" command) could otherwise carry —
// only its numeric Handle can cross that boundary. A stream_source
// component is then added with `add <id> stream_source ring=<handle>`.
func (s *session) cmdRing(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: ring create <size> | ring write <handle> <text> | ring close <handle>")
		return
	}
	switch args[0] {
	case "create":
		if len(args) != 2 {
			fmt.Println("usage: ring create <size>")
			return
		}
		size, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("not an integer:", args[1])
			return
		}
		h, _ := shmring.NewRegistered(size)
		fmt.Println("ring handle:", h)
	case "write":
		if len(args) != 3 {
			fmt.Println("usage: ring write <handle> <text>")
			return
		}
		h, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("not an integer:", args[1])
			return
		}
		ring := shmring.Get(shmring.Handle(h))
		if ring == nil {
			fmt.Println("unknown ring handle:", h)
			return
		}
		n := ring.TryWriteFrom([]byte(args[2]))
		fmt.Printf("wrote %d of %d bytes\n", n, len(args[2]))
	case "close":
		if len(args) != 2 {
			fmt.Println("usage: ring close <handle>")
			return
		}
		h, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("not an integer:", args[1])
			return
		}
		shmring.Close(shmring.Handle(h))
	default:
		fmt.Println("unknown ring subcommand:", args[0])
	}
}

func parseParams(kv []string) map[string]any {
	params := map[string]any{}
	for _, pair := range kv {
		key, val := pair, ""
		for i, r := range pair {
			if r == '=' {
				key, val = pair[:i], pair[i+1:]
				break
			}
		}
		if n, err := strconv.Atoi(val); err == nil {
			params[key] = n
		} else {
			params[key] = val
		}
	}
	return params
}
