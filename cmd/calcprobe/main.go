// Command calcprobe sends a single request to a calcd server.
//
//	calcprobe <host> <port>           reads a raw request line from stdin
//	calcprobe <host> <port> <target>  performs GET <target> over HTTP
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/freekieb7/calcd/client"
)

const (
	exitUsage = iota + 1
	exitHost
	exitPortSyntax
	exitPortRange
	exitRequest
)

func main() {
	addr, target, code, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
	defer cancel()

	if err := run(ctx, addr, target); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(exitRequest)
	}
}

func run(ctx context.Context, addr, target string) error {
	if target != "" {
		res, err := client.New(addr).Get(ctx, target)
		if err != nil {
			return err
		}
		fmt.Printf("%d %s\n", res.Status, res.Body)
		return nil
	}

	fmt.Printf("Connected to server %s\n", addr)
	fmt.Print("Enter your request, then press <Enter>: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read request from stdin: %w", err)
	}

	reply, err := client.SendLine(ctx, addr, strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	fmt.Printf("The response is: %s\n", reply)
	return nil
}

// parseArgs validates <host> <port> [target] and returns the exit code to
// use when they are invalid.
func parseArgs(args []string) (addr, target string, code int, err error) {
	if len(args) < 2 {
		return "", "", exitUsage, fmt.Errorf("not enough arguments, usage: <host> <port> [target], got %d", len(args))
	}

	host := args[0]
	if host == "" {
		return "", "", exitHost, fmt.Errorf("fail to parse host as an IP address or hostname, given %q", host)
	}
	if net.ParseIP(host) == nil {
		if _, lookupErr := net.LookupHost(host); lookupErr != nil {
			return "", "", exitHost, fmt.Errorf("fail to parse host as an IP address or hostname, given %q", host)
		}
	}

	port, convErr := strconv.Atoi(strings.TrimSpace(args[1]))
	if convErr != nil {
		return "", "", exitPortSyntax, fmt.Errorf("fail to parse port as an integer, given %q", args[1])
	}
	if port < 0 || port > 65535 {
		return "", "", exitPortRange, fmt.Errorf("port number out of range, expected integer between 0 and 65535, given %d", port)
	}

	if len(args) > 2 {
		target = args[2]
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}
	}

	return net.JoinHostPort(host, strconv.Itoa(port)), target, 0, nil
}
