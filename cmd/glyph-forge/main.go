package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"

	"github.com/Pantheon-LadderWorks/glyph-forge/cidutil"
	"github.com/Pantheon-LadderWorks/glyph-forge/keys"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger/localfs"
	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "mint":
		return cmdMint(args[1:], out, errOut)
	case "mint-key":
		return cmdMintKey(args[1:], out, errOut)
	case "parse":
		return cmdParse(args[1:], out, errOut)
	case "classes":
		return cmdClasses(out)
	case "states":
		return cmdStates(out)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "ledger":
		return cmdLedger(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "glyph-forge: mint and verify Glyph-Seals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glyph-forge mint <CLASS> <ORIGIN> [--state <s>] [--mode random|hybrid|deterministic] [--material <text>] [--witness <line>] [--batch N] [--json] [--verbose]")
	fmt.Fprintln(w, "  glyph-forge mint-key <CLASS> <ORIGIN> (--holder-key <alg:b64> | --signer <name> [--signer-role <role>]) [--state <s>] [--witness <line>] [--json]")
	fmt.Fprintln(w, "  glyph-forge parse <seal-string>")
	fmt.Fprintln(w, "  glyph-forge classes")
	fmt.Fprintln(w, "  glyph-forge states")
	fmt.Fprintln(w, "  glyph-forge key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  glyph-forge key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  glyph-forge key list")
	fmt.Fprintln(w, "  glyph-forge key export --name <name> [--role <role>]")
	fmt.Fprintln(w, "  glyph-forge ledger record --dir <path> <seal-string>")
	fmt.Fprintln(w, "  glyph-forge ledger lookup --dir <path> <CID>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - CLASS is one of NODE, LAW, LINK, RITE, ART, WIT; STATE defaults to VALID")
	fmt.Fprintln(w, "  - deterministic mode requires --material; same material, same seal")
	fmt.Fprintln(w, "  - keys live under ~/.glyphforge/keys/<name> (0600 seed files)")
	fmt.Fprintln(w, "  - parse finds the first seal anywhere in the input; text outside ⟦ ⟧ is ignored")
}

func printSeal(out io.Writer, s seal.Seal, verbose bool) {
	if s.Witness != "" {
		fmt.Fprintln(out, s.WithWitness(s.Witness))
	} else {
		fmt.Fprintln(out, s)
	}
	if verbose {
		r := s.Record()
		fmt.Fprintf(out, "  class: %s\n", r.Class)
		fmt.Fprintf(out, "  origin: %s\n", r.Origin)
		fmt.Fprintf(out, "  breath_anchor: %s\n", r.BreathAnchor)
		fmt.Fprintf(out, "  state: %s\n", r.State)
		if r.Witness != "" {
			fmt.Fprintf(out, "  witness: %s\n", r.Witness)
		}
		if id, err := cidutil.SealCID(s); err == nil {
			fmt.Fprintf(out, "  cid: %s\n", id)
		}
	}
}

func printJSON(out io.Writer, s seal.Seal) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(s.Record())
}

func cmdMint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	state := fs.String("state", "", "seal state (default VALID)")
	mode := fs.String("mode", "", "minting mode (default hybrid)")
	material := fs.String("material", "", "content material for deterministic mode")
	witness := fs.String("witness", "", "witness attestation line")
	batch := fs.Int("batch", 1, "mint N seals at once")
	asJSON := fs.Bool("json", false, "output as JSON")
	verbose := fs.Bool("verbose", false, "show detailed seal components")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: glyph-forge mint <CLASS> <ORIGIN> [flags]")
		return 2
	}

	var opts []seal.Option
	if *state != "" {
		opts = append(opts, seal.WithState(*state))
	}
	if *mode != "" {
		opts = append(opts, seal.WithMode(seal.Mode(*mode)))
	}
	if materialSet(fs) {
		opts = append(opts, seal.WithMaterial(*material))
	}
	if *witness != "" {
		opts = append(opts, seal.WithWitness(*witness))
	}

	n := *batch
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		s, err := seal.Mint(fs.Arg(0), fs.Arg(1), opts...)
		if err != nil {
			fmt.Fprintf(errOut, "mint: %v\n", err)
			return 1
		}
		if *asJSON {
			if err := printJSON(out, s); err != nil {
				fmt.Fprintf(errOut, "encode: %v\n", err)
				return 1
			}
			continue
		}
		printSeal(out, s, *verbose)
		if n > 1 && i < n-1 {
			fmt.Fprintln(out)
		}
	}
	return 0
}

// materialSet reports whether --material was given explicitly, so that
// an explicitly empty material still counts for deterministic mode.
func materialSet(fs *flag.FlagSet) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "material" {
			set = true
		}
	})
	return set
}

func cmdMintKey(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mint-key", flag.ContinueOnError)
	fs.SetOutput(errOut)
	holderKey := fs.String("holder-key", "", "algorithm-tagged public key (ed25519:<b64> or dilithium3:<b64>)")
	signer := fs.String("signer", "", "stored key name")
	signerRole := fs.String("signer-role", "", "stored key role")
	state := fs.String("state", "", "seal state (default VALID)")
	witness := fs.String("witness", "", "witness attestation line")
	asJSON := fs.Bool("json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: glyph-forge mint-key <CLASS> <ORIGIN> [flags]")
		return 2
	}

	var pub []byte
	var err error
	switch {
	case *holderKey != "":
		pub, err = keys.HolderKeyBytes(*holderKey)
	case *signer != "":
		var ks *keys.KeyStore
		ks, err = keys.Open("")
		if err == nil {
			pub, err = ks.PublicKeyBytes(*signer, *signerRole)
		}
	default:
		fmt.Fprintln(errOut, "mint-key: provide --holder-key or --signer")
		return 2
	}
	if err != nil {
		fmt.Fprintf(errOut, "mint-key: %v\n", err)
		return 1
	}

	var opts []seal.Option
	if *state != "" {
		opts = append(opts, seal.WithState(*state))
	}
	if *witness != "" {
		opts = append(opts, seal.WithWitness(*witness))
	}
	s, err := seal.MintFromKey(fs.Arg(0), fs.Arg(1), pub, opts...)
	if err != nil {
		fmt.Fprintf(errOut, "mint-key: %v\n", err)
		return 1
	}
	if *asJSON {
		if err := printJSON(out, s); err != nil {
			fmt.Fprintf(errOut, "encode: %v\n", err)
			return 1
		}
		return 0
	}
	printSeal(out, s, false)
	return 0
}

func cmdParse(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "usage: glyph-forge parse <seal-string>")
		return 2
	}
	c, ok := seal.VerifySyntax(args[0])
	if !ok {
		fmt.Fprintln(out, "INVALID — does not match Glyph-Seal syntax")
		fmt.Fprintln(out, "expected: ⟦ CLASS :: ORIGIN :: BREATH_ANCHOR :: STATE ⟧")
		return 1
	}
	fmt.Fprintln(out, "VALID Glyph-Seal")
	fmt.Fprintf(out, "  class: %s\n", c.Class)
	fmt.Fprintf(out, "  origin: %s\n", c.Origin)
	fmt.Fprintf(out, "  breath_anchor: %s\n", c.BreathAnchor)
	fmt.Fprintf(out, "  state: %s\n", c.State)
	fmt.Fprintf(out, "  valid_class: %t\n", c.ValidClass)
	fmt.Fprintf(out, "  valid_state: %t\n", c.ValidState)
	return 0
}

func cmdClasses(out io.Writer) int {
	descriptions := map[seal.Class]string{
		seal.ClassNode: "Sovereign presence / Identity",
		seal.ClassLaw:  "Refusal / Constitution / Invariant",
		seal.ClassLink: "Handshake / Connection edge",
		seal.ClassRite: "Ritual execution / Action",
		seal.ClassArt:  "Shareable artifact / Creation",
		seal.ClassWit:  "Witness record / Attestation",
	}
	fmt.Fprintln(out, "Glyph-Seal classes:")
	for _, c := range seal.Classes() {
		fmt.Fprintf(out, "  %s  %-6s %s\n", seal.GlyphFor(c), c, descriptions[c])
	}
	return 0
}

func cmdStates(out io.Writer) int {
	fmt.Fprintln(out, "Glyph-Seal states:")
	for _, s := range seal.States() {
		fmt.Fprintf(out, "  %s\n", s)
	}
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: glyph-forge key <init|derive|list|export> ...")
		return 2
	}
	ks, err := keys.Open("")
	if err != nil {
		fmt.Fprintf(errOut, "key: %v\n", err)
		return 1
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("key init", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "holder name")
		seedHex := fs.String("seed-hex", "", "32-byte ed25519 seed (64 hex chars); random when omitted")
		force := fs.Bool("force", false, "overwrite an existing key")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		var seed []byte
		if *seedHex != "" {
			seed, err = keys.ParseSeedHex(*seedHex)
			if err != nil {
				fmt.Fprintf(errOut, "key init: %v\n", err)
				return 1
			}
		} else {
			seed = make([]byte, 32)
			if _, err := rand.Read(seed); err != nil {
				fmt.Fprintf(errOut, "key init: %v\n", err)
				return 1
			}
		}
		holder, path, err := ks.InitializeRoot(*name, seed, *force)
		if err != nil {
			fmt.Fprintf(errOut, "key init: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "%s\n", holder)
		fmt.Fprintf(errOut, "seed written to %s\n", path)
		if *seedHex == "" {
			fmt.Fprintf(errOut, "seed-hex: %s\n", hex.EncodeToString(seed))
		}
		return 0
	case "derive":
		fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
		fs.SetOutput(errOut)
		from := fs.String("from", "", "root holder name")
		role := fs.String("role", "", "role label")
		force := fs.Bool("force", false, "overwrite an existing role key")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		holder, path, err := ks.DeriveRole(*from, *role, *force)
		if err != nil {
			fmt.Fprintf(errOut, "key derive: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "%s\n", holder)
		fmt.Fprintf(errOut, "seed written to %s\n", path)
		return 0
	case "list":
		entries, err := ks.List()
		if err != nil {
			fmt.Fprintf(errOut, "key list: %v\n", err)
			return 1
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\n", e.Name)
			for _, r := range e.Roles {
				fmt.Fprintf(out, "  role: %s\n", r)
			}
		}
		return 0
	case "export":
		fs := flag.NewFlagSet("key export", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "holder name")
		role := fs.String("role", "", "role label")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		holder, err := ks.Export(*name, *role)
		if err != nil {
			fmt.Fprintf(errOut, "key export: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "%s\n", holder)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

func cmdLedger(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: glyph-forge ledger <record|lookup> --dir <path> ...")
		return 2
	}
	switch args[0] {
	case "record":
		fs := flag.NewFlagSet("ledger record", flag.ContinueOnError)
		fs.SetOutput(errOut)
		dir := fs.String("dir", "", "ledger directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *dir == "" || fs.NArg() != 1 {
			fmt.Fprintln(errOut, "usage: glyph-forge ledger record --dir <path> <seal-string>")
			return 2
		}
		s, ok := seal.Parse(fs.Arg(0))
		if !ok {
			fmt.Fprintln(errOut, "ledger record: no seal found in input")
			return 1
		}
		led, err := localfs.New(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "ledger record: %v\n", err)
			return 1
		}
		id, err := led.PutSeal(s)
		if err != nil {
			fmt.Fprintf(errOut, "ledger record: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, id)
		return 0
	case "lookup":
		fs := flag.NewFlagSet("ledger lookup", flag.ContinueOnError)
		fs.SetOutput(errOut)
		dir := fs.String("dir", "", "ledger directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *dir == "" || fs.NArg() != 1 {
			fmt.Fprintln(errOut, "usage: glyph-forge ledger lookup --dir <path> <CID>")
			return 2
		}
		led, err := localfs.New(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "ledger lookup: %v\n", err)
			return 1
		}
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "ledger lookup: invalid CID: %v\n", err)
			return 1
		}
		b, err := led.Get(id)
		if err != nil {
			fmt.Fprintf(errOut, "ledger lookup: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, string(b))
		return 0
	default:
		fmt.Fprintf(errOut, "unknown ledger subcommand: %s\n", args[0])
		return 2
	}
}
