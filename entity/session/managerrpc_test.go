package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/session"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/codec"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/config"
)

func newTestServer(t *testing.T) (*session.Manager, *httptest.Server) {
	t.Helper()
	m := session.NewManager(newTestContext(config.Default()))
	mux := http.NewServeMux()
	m.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return m, srv
}

func newClient[Req, Res any](srv *httptest.Server, procedure string) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](
		srv.Client(), srv.URL+procedure, connect.WithCodec(codec.JSON{}),
	)
}

func TestSessionRPC(t *testing.T) {
	m, srv := newTestServer(t)
	ctx := context.Background()

	setField := newClient[session.SetFieldRequest, session.SetFieldResponse](srv, session.SessionServiceSetFieldProcedure)
	start := newClient[session.StartRequest, session.StartResponse](srv, session.SessionServiceStartProcedure)
	reset := newClient[session.ResetRequest, session.ResetResponse](srv, session.SessionServiceResetProcedure)
	getFrame := newClient[session.GetFrameRequest, session.GetFrameResponse](srv, session.SessionServiceGetFrameProcedure)
	getTrajectory := newClient[session.GetTrajectoryRequest, session.GetTrajectoryResponse](srv, session.SessionServiceGetTrajectoryProcedure)

	res, err := setField.CallUnary(ctx, connect.NewRequest(&session.SetFieldRequest{Field: physics.FieldV0, Value: 100}))
	require.NoError(t, err)
	assert.Equal(t, 80.0, res.Msg.Applied)
	assert.True(t, res.Msg.Clamped)
	assert.InDelta(t, 80.0, m.Get(physics.FieldV0), 1e-9)

	res, err = setField.CallUnary(ctx, connect.NewRequest(&session.SetFieldRequest{Field: physics.FieldV0, Value: 20}))
	require.NoError(t, err)
	assert.False(t, res.Msg.Clamped)

	_, err = getTrajectory.CallUnary(ctx, connect.NewRequest(&session.GetTrajectoryRequest{
		Actor: decision.ActorReferenceCar, Step: 0.1,
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	started, err := start.CallUnary(ctx, connect.NewRequest(&session.StartRequest{}))
	require.NoError(t, err)
	assert.Equal(t, decision.OutcomeDecelerate, started.Msg.Decision.Outcome)
	assert.Equal(t, "Decelerate !", started.Msg.Advice.Headline)

	_, err = setField.CallUnary(ctx, connect.NewRequest(&session.SetFieldRequest{Field: physics.FieldL, Value: 20}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	m.Tick(1)
	frame, err := getFrame.CallUnary(ctx, connect.NewRequest(&session.GetFrameRequest{}))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseAnimating, frame.Msg.Frame.Phase)
	assert.InDelta(t, 1.0, frame.Msg.Frame.T, 1e-9)
	assert.True(t, frame.Msg.Frame.Actors[decision.ActorDeceleratingCar].Visible)

	traj, err := getTrajectory.CallUnary(ctx, connect.NewRequest(&session.GetTrajectoryRequest{
		Actor: decision.ActorDeceleratingCar, Step: 0.5,
	}))
	require.NoError(t, err)
	require.NotEmpty(t, traj.Msg.Samples)
	assert.Equal(t, 0.0, traj.Msg.Samples[0].T)

	_, err = getTrajectory.CallUnary(ctx, connect.NewRequest(&session.GetTrajectoryRequest{
		Actor: decision.ActorDeceleratingCar, Step: 0,
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	cleared, err := reset.CallUnary(ctx, connect.NewRequest(&session.ResetRequest{}))
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseIdle, cleared.Msg.Frame.Phase)
	assert.Equal(t, 0.0, cleared.Msg.Frame.T)
	assert.Equal(t, decision.IdleHeadline, cleared.Msg.Frame.Advice.Headline)
}

func TestSessionRPCRejectsUnknownField(t *testing.T) {
	_, srv := newTestServer(t)
	raw := newClient[map[string]any, session.SetFieldResponse](srv, session.SessionServiceSetFieldProcedure)
	req := map[string]any{"field": "speed", "value": 1}
	_, err := raw.CallUnary(context.Background(), connect.NewRequest(&req))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
