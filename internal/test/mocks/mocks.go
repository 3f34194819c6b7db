package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

// MockStage is a gomock mock of pipeline.Stage.
type MockStage struct {
	ctrl     *gomock.Controller
	recorder *MockStageMockRecorder
}

type MockStageMockRecorder struct {
	mock *MockStage
}

func NewMockStage(ctrl *gomock.Controller) *MockStage {
	mock := &MockStage{ctrl: ctrl}
	mock.recorder = &MockStageMockRecorder{mock}
	return mock
}

func (m *MockStage) EXPECT() *MockStageMockRecorder {
	return m.recorder
}

func (m *MockStage) Execute(ctx context.Context, input <-chan interface{}, output chan<- interface{}, logger *zap.Logger) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute", ctx, input, output, logger)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStageMockRecorder) Execute(ctx, input, output, logger interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute", reflect.TypeOf((*MockStage)(nil).Execute), ctx, input, output, logger)
}
