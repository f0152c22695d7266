package main

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	dictsrv "github.com/dictsrv/dictsrv"
	"github.com/dictsrv/dictsrv/protocol"
)

func main() {
	var (
		host     string
		port     int
		database string
		strategy string
		match    bool
		timeout  time.Duration
	)

	root := &cobra.Command{
		Use:     "dict [word]",
		Short:   "Dictionary query client",
		Long:    "dict queries a DICT protocol (RFC 2229) server for word definitions or matches.",
		Example: "  dict hacker\n  dict -m -s prefix hack\n  dict -h dict.example.org -d jargon hacker",
		Version: fmt.Sprintf("%s %s/%s", dictsrv.Version, runtime.GOOS, runtime.GOARCH),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			request := fmt.Sprintf("DEFINE %s %q", database, word)
			if match {
				request = fmt.Sprintf("MATCH %s %s %q", database, strategy, word)
			}
			return query(fmt.Sprintf("%s:%d", host, port), request, timeout)
		},
	}

	// -h collides with cobra's help shorthand, so host has no short flag.
	root.Flags().StringVar(&host, "host", "localhost", "server host")
	root.Flags().IntVarP(&port, "port", "p", 2628, "server port")
	root.Flags().StringVarP(&database, "database", "d", "*", "database to search")
	root.Flags().StringVarP(&strategy, "strategy", "s", "exact", "strategy for matching")
	root.Flags().BoolVarP(&match, "match", "m", false, "match instead of define")
	root.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "connect timeout")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// query sends one command and prints everything through the final
// status line.
func query(addr, request string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	reader := protocol.NewReader(conn)

	// Banner.
	banner, err := reader.ReadLine()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(banner, "220") {
		return fmt.Errorf("unexpected greeting: %s", banner)
	}

	if _, err := fmt.Fprintf(conn, "%s%s", request, protocol.CRLF); err != nil {
		return err
	}

	inBlock := false
	for {
		line, err := reader.ReadLine()
		if err != nil {
			return err
		}

		if inBlock {
			if line == "." {
				inBlock = false
				continue
			}
			fmt.Println(strings.TrimPrefix(line, "."))
			continue
		}

		code := statusCode(line)
		switch {
		case code == protocol.StatusDefinitionsFollow,
			code == protocol.StatusDefinitionBlock,
			code == protocol.StatusMatchesFollow:
			if code != protocol.StatusDefinitionsFollow {
				inBlock = true
			}
			fmt.Println(line)
		case code == protocol.StatusOK:
			fmt.Fprintf(conn, "QUIT%s", protocol.CRLF)
			return nil
		case code >= 500 || code == protocol.StatusNoMatch:
			return fmt.Errorf("%s", line)
		default:
			fmt.Println(line)
		}
	}
}

func statusCode(line string) int {
	if len(line) < 3 {
		return 0
	}
	code := 0
	for _, ch := range line[:3] {
		if ch < '0' || ch > '9' {
			return 0
		}
		code = code*10 + int(ch-'0')
	}
	return code
}
