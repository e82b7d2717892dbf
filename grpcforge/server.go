package grpcforge

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Pantheon-LadderWorks/glyph-forge/keys"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger"
	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

// Server exposes the seal engine over the Forge gRPC service.
//
// When Ledger is non-nil, every minted seal's canonical render is
// recorded before the response is returned.
type Server struct {
	UnimplementedForgeServer
	Ledger ledger.Ledger
}

// stringField returns the request field and whether it was present.
func stringField(in *structpb.Struct, key string) (string, bool) {
	v, ok := in.GetFields()[key]
	if !ok {
		return "", false
	}
	return v.GetStringValue(), true
}

func (s *Server) mintOptions(in *structpb.Struct) []seal.Option {
	var opts []seal.Option
	if st, ok := stringField(in, "state"); ok {
		opts = append(opts, seal.WithState(st))
	}
	if mode, ok := stringField(in, "mode"); ok {
		opts = append(opts, seal.WithMode(seal.Mode(mode)))
	}
	if material, ok := stringField(in, "material"); ok {
		opts = append(opts, seal.WithMaterial(material))
	}
	if witness, ok := stringField(in, "witness"); ok {
		opts = append(opts, seal.WithWitness(witness))
	}
	return opts
}

func (s *Server) respond(minted seal.Seal) (*wrapperspb.StringValue, error) {
	if s.Ledger != nil {
		if _, err := s.Ledger.Put([]byte(minted.String())); err != nil {
			return nil, status.Error(codes.Internal, "ledger record failed")
		}
	}
	return wrapperspb.String(minted.String()), nil
}

func (s *Server) Mint(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	class, _ := stringField(in, "class")
	origin, _ := stringField(in, "origin")

	minted, err := seal.Mint(class, origin, s.mintOptions(in)...)
	if err != nil {
		return nil, mapMintErr(err)
	}
	return s.respond(minted)
}

func (s *Server) MintFromKey(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	class, _ := stringField(in, "class")
	origin, _ := stringField(in, "origin")
	holder, _ := stringField(in, "holder_key")

	pub, err := keys.HolderKeyBytes(holder)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	var opts []seal.Option
	if st, ok := stringField(in, "state"); ok {
		opts = append(opts, seal.WithState(st))
	}
	if witness, ok := stringField(in, "witness"); ok {
		opts = append(opts, seal.WithWitness(witness))
	}

	minted, err := seal.MintFromKey(class, origin, pub, opts...)
	if err != nil {
		return nil, mapMintErr(err)
	}
	return s.respond(minted)
}

func (s *Server) Verify(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	c, found := seal.VerifySyntax(in.GetValue())
	fields := map[string]interface{}{"found": found}
	if found {
		fields["class"] = c.Class
		fields["origin"] = c.Origin
		fields["breath_anchor"] = c.BreathAnchor
		fields["state"] = c.State
		fields["valid_class"] = c.ValidClass
		fields["valid_state"] = c.ValidState
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "response encoding failed")
	}
	return out, nil
}

// mapMintErr converts engine errors to grpc status codes. All engine
// failures are caller input errors, so they map to InvalidArgument with
// the stable rule ID preserved in the message.
func mapMintErr(err error) error {
	var e *seal.Error
	if errors.As(err, &e) && e.Kind != seal.KindInternal {
		return status.Error(codes.InvalidArgument, e.RuleID+": "+e.Message)
	}
	return status.Error(codes.Internal, err.Error())
}
