package grpcforge

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Pantheon-LadderWorks/glyph-forge/keys"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger/localfs"
	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

func dialTestServer(t *testing.T, srv *Server) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	RegisterForgeServer(s, srv)

	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewForgeClient(cc), Timeout: 2 * time.Second}
}

func TestForge_MintVerifyRoundTrip(t *testing.T) {
	client := dialTestServer(t, &Server{})

	rendered, err := client.Mint(MintRequest{Class: "node", Origin: "pantheon", State: "active"})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	c, found, err := client.Verify("noise " + rendered + " noise")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !found {
		t.Fatalf("expected seal to be found in %q", rendered)
	}
	if c.Class != "NODE" || c.Origin != "PANTHEON" || c.State != "ACTIVE" {
		t.Errorf("unexpected components: %+v", c)
	}
	if !c.ValidClass || !c.ValidState {
		t.Errorf("expected valid taxonomy flags: %+v", c)
	}
}

func TestForge_VerifyAbsent(t *testing.T) {
	client := dialTestServer(t, &Server{})

	_, found, err := client.Verify("not a seal at all")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if found {
		t.Fatal("expected no seal in plain text")
	}
}

func TestForge_MintDeterministicMaterialPresence(t *testing.T) {
	client := dialTestServer(t, &Server{})

	material := "refusal"
	a, err := client.Mint(MintRequest{Class: "LAW", Origin: "C-FED-001", Mode: "deterministic", Material: &material})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	b, err := client.Mint(MintRequest{Class: "LAW", Origin: "C-FED-001", Mode: "deterministic", Material: &material})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if a != b {
		t.Fatalf("deterministic mint diverged over the wire: %q vs %q", a, b)
	}

	// Missing material must surface the stable rule ID as InvalidArgument.
	_, err = client.Mint(MintRequest{Class: "LAW", Origin: "C-FED-001", Mode: "deterministic"})
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if !strings.Contains(st.Message(), "GLYPH-MAT-001") {
		t.Errorf("expected rule ID in message, got %q", st.Message())
	}
}

func TestForge_MintRejectsBogusTaxonomy(t *testing.T) {
	client := dialTestServer(t, &Server{})

	_, err := client.Mint(MintRequest{Class: "BOGUS", Origin: "X"})
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if !strings.Contains(st.Message(), "GLYPH-TAX-001") {
		t.Errorf("expected rule ID in message, got %q", st.Message())
	}
}

func TestForge_MintFromKeyStableFingerprint(t *testing.T) {
	client := dialTestServer(t, &Server{})

	holder := keys.GenerateHolderFromSeed(make([]byte, 32))
	a, err := client.MintFromKey("NODE", "PANTHEON", holder, "", "")
	if err != nil {
		t.Fatalf("MintFromKey: %v", err)
	}
	b, err := client.MintFromKey("NODE", "PANTHEON", holder, "", "")
	if err != nil {
		t.Fatalf("MintFromKey: %v", err)
	}
	sa, ok := seal.Parse(a)
	if !ok {
		t.Fatalf("response does not parse: %q", a)
	}
	sb, _ := seal.Parse(b)
	if sa.BreathAnchor != sb.BreathAnchor {
		t.Fatalf("fingerprint unstable over the wire: %q vs %q", sa.BreathAnchor, sb.BreathAnchor)
	}

	_, err = client.MintFromKey("NODE", "PANTHEON", "rsa:AAAA", "", "")
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for unsupported holder key, got %v", err)
	}
}

func TestForge_LedgerRecordsMints(t *testing.T) {
	led, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	client := dialTestServer(t, &Server{Ledger: led})

	rendered, err := client.Mint(MintRequest{Class: "RITE", Origin: "SESSION"})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	minted, ok := seal.Parse(rendered)
	if !ok {
		t.Fatalf("response does not parse: %q", rendered)
	}
	id, err := led.PutSeal(minted)
	if err != nil {
		t.Fatalf("PutSeal: %v", err)
	}
	// The server already recorded it, so the second Put was idempotent.
	if !led.Has(id) {
		t.Fatal("ledger missing minted seal")
	}
}
