package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"
	tresp "github.com/tidwall/resp"
)

var (
	cliAddr string
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start a CLI client to connect to a respkv server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startCLI(cliAddr, os.Stdin, os.Stdout)
	},
}

func init() {
	cliCmd.Flags().StringVar(&cliAddr, "addr", "127.0.0.1:6379", "server address to connect to")
	rootCmd.AddCommand(cliCmd)
}

// startCLI 启动命令行客户端
func startCLI(addr string, in io.Reader, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Fprintf(out, "Connected to respkv at %s\n", addr)
	return repl(conn, in, out)
}

func repl(conn io.ReadWriter, in io.Reader, out io.Writer) error {
	stdin := bufio.NewReader(in)
	replies := tresp.NewReader(conn)

	for {
		fmt.Fprint(out, "> ")
		line, err := stdin.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			fmt.Fprintln(out, "bye")
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(out, "bye")
			return nil
		}

		args := strings.Fields(line)
		req, err := encodeRequest(args)
		if err != nil {
			return err
		}

		// 服务端按一次读取一帧处理，请求必须一次写出
		if _, err := conn.Write(req); err != nil {
			return fmt.Errorf("write request: %w", err)
		}

		v, _, err := replies.ReadValue()
		if err != nil {
			// 出错时服务端直接断开连接，不返回错误回复
			return fmt.Errorf("read response: %w", err)
		}
		printRESP(out, v)
	}
}

func encodeRequest(args []string) ([]byte, error) {
	rest := make([]interface{}, 0, len(args)-1)
	for _, a := range args[1:] {
		rest = append(rest, a)
	}
	return tresp.MultiBulkValue(args[0], rest...).MarshalRESP()
}

func printRESP(out io.Writer, v tresp.Value) {
	switch v.Type() {
	case tresp.Array:
		if v.IsNull() {
			fmt.Fprintln(out, "(nil)")
			return
		}
		for _, e := range v.Array() {
			printRESP(out, e)
		}
	case tresp.Error:
		fmt.Fprintln(out, "(error)", v.String())
	case tresp.Integer:
		fmt.Fprintln(out, v.Integer())
	default:
		if v.IsNull() {
			fmt.Fprintln(out, "(nil)")
			return
		}
		fmt.Fprintln(out, v.String())
	}
}
