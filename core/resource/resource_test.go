package resource

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajones55555/rocketlane-sdk/core/paginate"
	"github.com/ajones55555/rocketlane-sdk/core/query"
)

type task struct {
	TaskID   int    `json:"taskId"`
	TaskName string `json:"taskName"`
	Project  *ref   `json:"project,omitempty"`
}

type ref struct {
	ProjectName string `json:"projectName,omitempty"`
}

type call struct {
	method string
	path   string
	params map[string]any
	body   any
}

// fakeDoer is a scripted Doer: every List call serves the next queued page,
// every other call decodes the canned response into out.
type fakeDoer struct {
	calls    []call
	pages    []*paginate.Page[task]
	response any
	err      error
}

func (f *fakeDoer) roundTrip(src, out any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeDoer) Get(ctx context.Context, path string, out any) error {
	f.calls = append(f.calls, call{method: "GET", path: path})
	if f.err != nil {
		return f.err
	}
	return f.roundTrip(f.response, out)
}

func (f *fakeDoer) Post(ctx context.Context, path string, in, out any) error {
	f.calls = append(f.calls, call{method: "POST", path: path, body: in})
	if f.err != nil {
		return f.err
	}
	return f.roundTrip(f.response, out)
}

func (f *fakeDoer) Put(ctx context.Context, path string, in, out any) error {
	f.calls = append(f.calls, call{method: "PUT", path: path, body: in})
	if f.err != nil {
		return f.err
	}
	return f.roundTrip(f.response, out)
}

func (f *fakeDoer) Delete(ctx context.Context, path string) error {
	f.calls = append(f.calls, call{method: "DELETE", path: path})
	return f.err
}

func (f *fakeDoer) List(ctx context.Context, path string, params map[string]any, out any) error {
	f.calls = append(f.calls, call{method: "LIST", path: path, params: params})
	if f.err != nil {
		return f.err
	}
	page := f.pages[0]
	if len(f.pages) > 1 {
		f.pages = f.pages[1:]
	}
	return f.roundTrip(page, out)
}

func page(hasMore bool, token string, tasks ...task) *paginate.Page[task] {
	return &paginate.Page[task]{
		Data: tasks,
		Pagination: paginate.PageInfo{
			PageSize:      len(tasks),
			HasMore:       hasMore,
			NextPageToken: token,
		},
	}
}

func newTestResource(t *testing.T, doer *fakeDoer, opts ...Option[task]) *Resource[task] {
	t.Helper()
	r, err := New[task](doer, "tasks", "/1.0/tasks", opts...)
	require.NoError(t, err)
	return r
}

func TestResource_List(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(false, "", task{TaskID: 1, TaskName: "Kickoff"}),
	}}
	r := newTestResource(t, doer)

	got, err := r.List(context.Background(), paginate.Params{"projectId": 412})
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", got.Data[0].TaskName)
	assert.Equal(t, "/1.0/tasks", doer.calls[0].path)
	assert.Equal(t, map[string]any{"projectId": 412}, doer.calls[0].params)
}

func TestResource_ListAllFollowsTokens(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(true, "t1", task{TaskID: 1}, task{TaskID: 2}),
		page(true, "t2", task{TaskID: 3}),
		page(false, "", task{TaskID: 4}),
	}}
	r := newTestResource(t, doer)

	items, err := r.ListAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 4, items[3].TaskID)

	require.Len(t, doer.calls, 3)
	assert.Equal(t, any("t1"), doer.calls[1].params[paginate.ParamPageToken])
	assert.Equal(t, any("t2"), doer.calls[2].params[paginate.ParamPageToken])
}

func TestResource_MaxPagesOption(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(true, "t1", task{TaskID: 1}),
		page(true, "t1", task{TaskID: 2}),
	}}
	r := newTestResource(t, doer, WithMaxPages[task](2))

	items, err := r.ListAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, doer.calls, 2)
}

func TestResource_ItemsLazySequence(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(true, "t1", task{TaskID: 1}, task{TaskID: 2}),
		page(false, "", task{TaskID: 3}),
	}}
	r := newTestResource(t, doer)

	var ids []int
	for item, err := range r.Items(context.Background(), nil) {
		require.NoError(t, err)
		ids = append(ids, item.TaskID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestResource_CRUD(t *testing.T) {
	doer := &fakeDoer{response: task{TaskID: 7, TaskName: "Review"}}
	r := newTestResource(t, doer)
	ctx := context.Background()

	got, err := r.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Review", got.TaskName)
	assert.Equal(t, call{method: "GET", path: "/1.0/tasks/7"}, doer.calls[0])

	_, err = r.Create(ctx, map[string]any{"taskName": "Review"})
	require.NoError(t, err)
	assert.Equal(t, "POST", doer.calls[1].method)
	assert.Equal(t, "/1.0/tasks", doer.calls[1].path)

	_, err = r.Update(ctx, "7", map[string]any{"taskName": "Review v2"})
	require.NoError(t, err)
	assert.Equal(t, "PUT", doer.calls[2].method)
	assert.Equal(t, "/1.0/tasks/7", doer.calls[2].path)

	require.NoError(t, r.Delete(ctx, "7"))
	assert.Equal(t, call{method: "DELETE", path: "/1.0/tasks/7"}, doer.calls[3])
}

func TestResource_ErrorsPropagateUnmodified(t *testing.T) {
	boom := errors.New("upstream failure")
	doer := &fakeDoer{err: boom}
	r := newTestResource(t, doer)
	ctx := context.Background()

	_, err := r.List(ctx, nil)
	assert.ErrorIs(t, err, boom)
	_, err = r.ListAll(ctx, nil)
	assert.ErrorIs(t, err, boom)
	_, err = r.Get(ctx, "1")
	assert.ErrorIs(t, err, boom)

	for _, seqErr := range r.Items(ctx, nil) {
		assert.ErrorIs(t, seqErr, boom)
	}
}

func TestResource_QueryExecute(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(false, "", task{TaskID: 1, TaskName: "Kickoff"}),
	}}
	r := newTestResource(t, doer)

	q := r.Query()
	q.WhereEquals("projectId", 412).OrderByDesc("dueDate").Limit(25)

	got, err := q.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, map[string]any{
		"projectId": 412,
		"sortBy":    "dueDate",
		"sortOrder": "desc",
		"pageSize":  25,
	}, doer.calls[0].params)
}

func TestResource_QueryTemplate(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(false, "", task{TaskID: 1}),
	}}
	r := newTestResource(t, doer)

	_, err := r.QueryTemplate(context.Background(),
		"SELECT * FROM tasks WHERE projectId = ? LIMIT 10", 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"projectId": 5, "pageSize": 10}, doer.calls[0].params)
}

func TestQuery_ExecuteProjected(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(false, "",
			task{TaskID: 1, TaskName: "Kickoff", Project: &ref{ProjectName: "Acme"}},
		),
	}}
	r := newTestResource(t, doer)

	q := r.Query()
	q.SelectTree(query.Selection{
		"taskName": true,
		"project":  query.Selection{"projectName": true},
	})

	docs, err := q.ExecuteProjected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []query.Document{{
		"taskName": "Kickoff",
		"project":  query.Document{"projectName": "Acme"},
	}}, docs)
}

func TestResource_Events(t *testing.T) {
	doer := &fakeDoer{pages: []*paginate.Page[task]{
		page(false, "", task{TaskID: 1}),
	}}
	r := newTestResource(t, doer)

	received := make(chan Event, 1)
	id := r.Subscribe(ListSuccess, func(ctx context.Context, event Event) error {
		select {
		case received <- event:
		default:
		}
		return nil
	})
	defer r.Unsubscribe(id)

	_, err := r.List(context.Background(), paginate.Params{"projectId": 1})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, ListSuccess, event.Type)
		assert.Equal(t, "tasks", event.Resource)
		assert.Equal(t, 1, event.Count)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a list success event")
	}
}

func TestResource_EventFailure(t *testing.T) {
	doer := &fakeDoer{err: errors.New("boom")}
	r := newTestResource(t, doer)

	received := make(chan Event, 1)
	r.Subscribe(ListFailed, func(ctx context.Context, event Event) error {
		select {
		case received <- event:
		default:
		}
		return nil
	})

	_, err := r.List(context.Background(), nil)
	require.Error(t, err)

	select {
	case event := <-received:
		assert.Equal(t, ListFailed, event.Type)
		assert.Equal(t, "boom", event.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a list failed event")
	}
}
