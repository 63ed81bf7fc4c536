package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, "random", 30)
	p.OnLayoutComplete(ctx, "random", 30, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("boom"))

	s := NoopSceneHooks{}
	s.OnSceneBuild(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", 35, time.Millisecond, nil)
	s.OnSceneDispose(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/plan.svg")
	h.OnResponse(ctx, "GET", "/plan.svg", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != customScene {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset() should restore NoopSceneHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSceneHooks{}
	SetSceneHooks(custom)
	SetSceneHooks(nil)

	if Scene() != custom {
		t.Error("SetSceneHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testSceneHooks struct{ NoopSceneHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
