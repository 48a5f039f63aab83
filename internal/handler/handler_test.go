// internal/handler/handler_test.go
package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	rpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/SyedDaiam9101/imageable-service/internal/caption"
	"github.com/SyedDaiam9101/imageable-service/internal/ensemble"
	"github.com/SyedDaiam9101/imageable-service/internal/imaging"
	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/middleware"
	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
	pb "github.com/SyedDaiam9101/imageable-service/proto/inferencepb"
)

// ids: startseq=1 endseq=2 a=3 dog=4 runs=5
func testTokenizer(t *testing.T) *vocab.Tokenizer {
	t.Helper()
	v, err := vocab.NewVocabulary([]vocab.Entry{
		{Word: "startseq", ID: 1},
		{Word: "endseq", ID: 2},
		{Word: "a", ID: 3},
		{Word: "dog", ID: 4},
		{Word: "runs", ID: 5},
	})
	require.NoError(t, err)
	tok, err := vocab.NewTokenizer(v, vocab.DefaultOptions(35))
	require.NoError(t, err)
	return tok
}

type fixture struct {
	h       *Handler
	members []*inference.MockSequenceModel
	caption *inference.MockCaptionModel
	feature *inference.MockFeatureModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tok := testTokenizer(t)

	m0 := inference.NewMockSequenceModel(0.1, 0.9)
	m1 := inference.NewMockSequenceModel(0.7, 0.3)
	pred, err := ensemble.New(tok, []inference.SequenceModel{m0, m1})
	require.NoError(t, err)

	cm := inference.NewMockCaptionModel(6, 3, 4, 5, 2)
	dec, err := caption.New(cm, tok, caption.DefaultOptions())
	require.NoError(t, err)

	fm := inference.NewMockFeatureModel(8)
	ext, err := imaging.NewExtractor(fm, 32)
	require.NoError(t, err)

	h := New(Deps{Predictor: pred, Decoder: dec, Extractor: ext, Logger: zerolog.Nop()})
	return &fixture{h: h, members: []*inference.MockSequenceModel{m0, m1}, caption: cm, feature: fm}
}

func values(resp *pb.PredictResponse) [][]float32 {
	out := make([][]float32, len(resp.GetPredictions()))
	for g, s := range resp.GetPredictions() {
		out[g] = s.GetValues()
	}
	return out
}

func TestPredictAccessWithNilPredictor(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})

	_, err := h.PredictAccess(context.Background(), &pb.PredictRequest{Descriptions: []string{"a dog"}})
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got: %v", err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
}

func TestPredictAccessWithNilRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.h.PredictAccess(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestPredictAccessWithMockEnsemble(t *testing.T) {
	f := newFixture(t)

	resp, err := f.h.PredictAccess(context.Background(), &pb.PredictRequest{
		Descriptions: []string{"A dog runs"},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.9}, {0.7, 0.3}}, values(resp))

	for g, m := range f.members {
		assert.Equal(t, 1, m.CallCount(), "member %d", g)
		batch := m.LastBatch()
		require.Len(t, batch, 1)
		require.Len(t, batch[0], 35)
		assert.Equal(t, []int64{3, 4, 5, 0}, batch[0][:4], "member %d should see a post-padded row", g)
	}
}

func TestPredictAccessWithEmptyDescriptions(t *testing.T) {
	f := newFixture(t)

	for _, descs := range [][]string{nil, {}, {"a dog", ""}} {
		_, err := f.h.PredictAccess(context.Background(), &pb.PredictRequest{Descriptions: descs})
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "descriptions %q", descs)
	}

	for g, m := range f.members {
		assert.Zero(t, m.CallCount(), "member %d should not run on invalid input", g)
	}
}

func TestPredictAccessWithMemberFailure(t *testing.T) {
	f := newFixture(t)
	f.members[1].SetError("session lost")

	resp, err := f.h.PredictAccess(context.Background(), &pb.PredictRequest{Descriptions: []string{"a dog"}})
	assert.Nil(t, resp, "no partial response")
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestCaptionFeatures(t *testing.T) {
	f := newFixture(t)

	resp, err := f.h.CaptionFeatures(context.Background(), &pb.CaptionFeaturesRequest{
		Features: []float32{0.1, 0.2, 0.3},
	})
	require.NoError(t, err)
	assert.Equal(t, "a dog runs", resp.GetCaption())
	assert.Equal(t, 4, f.caption.CallCount())
}

func TestCaptionFeaturesWithEmptyVector(t *testing.T) {
	f := newFixture(t)

	_, err := f.h.CaptionFeatures(context.Background(), &pb.CaptionFeaturesRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Zero(t, f.caption.CallCount())
}

func TestCaptionWithImage(t *testing.T) {
	f := newFixture(t)

	resp, err := f.h.Caption(context.Background(), &pb.CaptionRequest{Image: pngBytes(t, 40, 20)})
	require.NoError(t, err)
	assert.Equal(t, "a dog runs", resp.GetCaption())
}

func TestCaptionWithUnreadableImage(t *testing.T) {
	f := newFixture(t)

	_, err := f.h.Caption(context.Background(), &pb.CaptionRequest{Image: []byte("not an image")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCaptionWithExtractorFailure(t *testing.T) {
	f := newFixture(t)
	f.feature.ShouldError = true

	_, err := f.h.Caption(context.Background(), &pb.CaptionRequest{Image: pngBytes(t, 8, 8)})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestCaptionWithoutDecoder(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})

	_, err := h.Caption(context.Background(), &pb.CaptionRequest{Image: []byte{1}})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	_, err = h.CaptionFeatures(context.Background(), &pb.CaptionFeaturesRequest{Features: []float32{1}})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestGRPCError(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: empty batch", inference.ErrInvalidInput), codes.InvalidArgument},
		{fmt.Errorf("%w: ensemble", inference.ErrNotLoaded), codes.FailedPrecondition},
		{fmt.Errorf("%w: member 3: boom", inference.ErrModelInvocation), codes.Internal},
		{errors.New("anything else"), codes.Internal},
		{status.Error(codes.Canceled, "gone"), codes.Canceled},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(grpcError(tt.err)), "grpcError(%v)", tt.err)
	}
	assert.NoError(t, grpcError(nil))
}

// serve starts the service with reflection on an in-memory listener.
func serve(t *testing.T, h *Handler) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		middleware.UnaryRequestIDInterceptor(),
		middleware.UnaryMetricsInterceptor(),
	))
	pb.RegisterInferenceServer(srv, h)
	reflection.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInferenceServiceOverBufconn(t *testing.T) {
	f := newFixture(t)
	client := pb.NewInferenceClient(serve(t, f.h))
	ctx := context.Background()

	var header metadata.MD
	callCtx := metadata.AppendToOutgoingContext(ctx, middleware.RequestIDHeader, "req-42")
	resp, err := client.PredictAccess(callCtx, &pb.PredictRequest{Descriptions: []string{"a dog", "runs"}}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.9, 0.1, 0.9}, {0.7, 0.3, 0.7, 0.3}}, values(resp))
	assert.Equal(t, []string{"req-42"}, header.Get(middleware.RequestIDHeader))

	cr, err := client.CaptionFeatures(ctx, &pb.CaptionFeaturesRequest{Features: []float32{0.5}})
	require.NoError(t, err)
	assert.Equal(t, "a dog runs", cr.GetCaption())

	_, err = client.PredictAccess(ctx, &pb.PredictRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestReflectionDescribesInferenceService(t *testing.T) {
	f := newFixture(t)
	rc := rpb.NewServerReflectionClient(serve(t, f.h))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream, err := rc.ServerReflectionInfo(ctx)
	require.NoError(t, err)

	require.NoError(t, stream.Send(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_ListServices{},
	}))
	list, err := stream.Recv()
	require.NoError(t, err)
	var names []string
	for _, s := range list.GetListServicesResponse().GetService() {
		names = append(names, s.GetName())
	}
	assert.Contains(t, names, "imageable.v1.Inference")

	require.NoError(t, stream.Send(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: "imageable.v1.Inference",
		},
	}))
	resp, err := stream.Recv()
	require.NoError(t, err)
	require.Nil(t, resp.GetErrorResponse(), "reflection error: %v", resp.GetErrorResponse())

	files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
	require.NotEmpty(t, files)
	var fd descriptorpb.FileDescriptorProto
	require.NoError(t, proto.Unmarshal(files[0], &fd))
	assert.Equal(t, "imageable/v1/inference.proto", fd.GetName())
	require.Len(t, fd.GetService(), 1)
	var methods []string
	for _, m := range fd.GetService()[0].GetMethod() {
		methods = append(methods, m.GetName())
	}
	assert.Equal(t, []string{"PredictAccess", "Caption", "CaptionFeatures"}, methods)
}
