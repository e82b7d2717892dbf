package grpcforge

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

// MintRequest carries the mint parameters over the wire. Material is a
// pointer because presence matters: deterministic minting with
// explicitly empty material is valid, absence is not.
type MintRequest struct {
	Class    string
	Origin   string
	State    string
	Mode     string
	Material *string
	Witness  string
}

// Client is a typed wrapper over the Forge gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client ForgeClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration
}

func Dial(target string, opts DialOptions) (*Client, error) {
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewForgeClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (r MintRequest) toStruct() (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"class":  r.Class,
		"origin": r.Origin,
	}
	if r.State != "" {
		fields["state"] = r.State
	}
	if r.Mode != "" {
		fields["mode"] = r.Mode
	}
	if r.Material != nil {
		fields["material"] = *r.Material
	}
	if r.Witness != "" {
		fields["witness"] = r.Witness
	}
	return structpb.NewStruct(fields)
}

// Mint mints a seal remotely and returns its canonical render.
func (c *Client) Mint(req MintRequest) (string, error) {
	in, err := req.toStruct()
	if err != nil {
		return "", err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Mint(ctx, in)
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

// MintFromKey mints a key-derived seal remotely. holderKey is an
// algorithm-tagged public key string (keys.HolderKeyBytes format).
func (c *Client) MintFromKey(class, origin, holderKey, state, witness string) (string, error) {
	fields := map[string]interface{}{
		"class":      class,
		"origin":     origin,
		"holder_key": holderKey,
	}
	if state != "" {
		fields["state"] = state
	}
	if witness != "" {
		fields["witness"] = witness
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return "", err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.MintFromKey(ctx, in)
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

// Verify asks the service to locate a seal in text. The bool mirrors
// seal.VerifySyntax: false means no seal was found, not an error.
func (c *Client) Verify(text string) (seal.Components, bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Verify(ctx, wrapperspb.String(text))
	if err != nil {
		return seal.Components{}, false, err
	}
	fields := reply.GetFields()
	if !fields["found"].GetBoolValue() {
		return seal.Components{}, false, nil
	}
	return seal.Components{
		Class:        fields["class"].GetStringValue(),
		Origin:       fields["origin"].GetStringValue(),
		BreathAnchor: fields["breath_anchor"].GetStringValue(),
		State:        fields["state"].GetStringValue(),
		ValidClass:   fields["valid_class"].GetBoolValue(),
		ValidState:   fields["valid_state"].GetBoolValue(),
	}, true, nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
