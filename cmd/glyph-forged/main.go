package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/Pantheon-LadderWorks/glyph-forge/grpcforge"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger/localfs"
)

func main() {
	fs := flag.NewFlagSet("glyph-forged", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7878", "listen address")
	ledgerDir := fs.String("ledger-dir", "", "record minted seals under this directory (disabled when empty)")

	_ = fs.Parse(os.Args[1:])

	var led ledger.Ledger
	if *ledgerDir != "" {
		l, err := localfs.New(*ledgerDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		led = l
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcforge.RegisterForgeServer(s, &grpcforge.Server{Ledger: led})

	if led != nil {
		fmt.Fprintf(os.Stderr, "glyph-forged listening on %s (ledger=%s)\n", lis.Addr().String(), *ledgerDir)
	} else {
		fmt.Fprintf(os.Stderr, "glyph-forged listening on %s (ledger disabled)\n", lis.Addr().String())
	}
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
