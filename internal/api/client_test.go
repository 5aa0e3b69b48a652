package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilimpath/bilim/internal/exam"
	"github.com/bilimpath/bilim/internal/session"
)

func testSession() session.Session {
	return session.New("tok-123", "bearer", session.RoleStudent)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 0, nil)
}

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.kz", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})

	tok, err := c.Login(context.Background(), "a@b.kz", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.AccessToken)
}

func TestLogin_MissingTokenIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	_, err := c.Login(context.Background(), "a@b.kz", "secret")
	require.Error(t, err)
}

func TestDo_ExtractsDetailFromErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"LLM unavailable"}`))
	})

	_, err := c.GenerateTopicExam(context.Background(), testSession(), "t-1", exam.DefaultLevel)
	require.Error(t, err)
	assert.Equal(t, "LLM unavailable", err.Error())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestDo_FallsBackWhenDetailAbsent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	})

	_, err := c.GenerateTopicExam(context.Background(), testSession(), "t-1", exam.DefaultLevel)
	require.Error(t, err)
	assert.Equal(t, "Exam generation failed", err.Error())
}

func TestMyProgress_BearerAuthAndIDVariants(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		// One subject uses subject_id, one uses a numeric id.
		w.Write([]byte(`[
			{"subject_id":"s-uuid","name":"Math","topics":[{"id":"t1","title":"Fractions","mastery_level":75.5}]},
			{"id":3,"name":"Physics","topics":[]}
		]`))
	})

	subjects, err := c.MyProgress(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "s-uuid", subjects[0].ID)
	assert.Equal(t, 75.5, subjects[0].Topics[0].MasteryLevel)
	assert.Equal(t, "3", subjects[1].ID)
	assert.Empty(t, subjects[1].Topics)
}

func TestGenerateTopicExam_DecodesQuestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"exam_id":"ex-1","topic":"Fractions",
			"questions":[{"question":"1/2 + 1/2?","options":["1","2"],"correct_answer":"1"}]
		}`))
	})

	got, err := c.GenerateTopicExam(context.Background(), testSession(), "t-1", 3)
	require.NoError(t, err)
	assert.Equal(t, "ex-1", got.ExamID)
	assert.Equal(t, "Fractions", got.Title)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "1", got.Questions[0].CorrectAnswer)
}

func TestGenerateTopicExam_RejectsMalformedPayload(t *testing.T) {
	// LLM-backed generation can return structural garbage; schema validation
	// turns it into the generation fallback instead of a partial exam.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"exam_id":"ex-1","questions":[{"question":"q?","options":["a","b"]}]}`))
	})

	_, err := c.GenerateTopicExam(context.Background(), testSession(), "t-1", 3)
	require.Error(t, err)
	assert.Equal(t, "Exam generation failed", err.Error())
}

func TestGenerateSubjectExam_RequestShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		// Numeric subject ids go out as numbers, matching the backend.
		assert.JSONEq(t, `{"subject_id":3,"difficulty":"medium","num_questions":8}`, string(body))
		w.Write([]byte(`{"id":7,"questions":[
			{"id":1,"question_text":"Q1","options":["a","b"],"topic_title":"Algebra"},
			{"id":2,"question_text":"Q2","options":["a","b"]}
		]}`))
	})

	got, err := c.GenerateSubjectExam(context.Background(), testSession(), "3", exam.Medium, 8)
	require.NoError(t, err)
	assert.Equal(t, "7", got.ExamID)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "1", got.Questions[0].ID)
	assert.Equal(t, "Algebra", got.Questions[0].TopicTitle)
}

func TestSubmitTopicExam_PathAndAnalysis(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exams/ex-1/submit", r.URL.Path)
		w.Write([]byte(`{
			"score":66.7,"correct_answers":2,
			"analysis":{"explanation":"ok","recommendation":"practice","weak_topics":["Fractions"]}
		}`))
	})

	res, err := c.SubmitTopicExam(context.Background(), testSession(), "ex-1", []exam.IndexedAnswer{
		{QuestionIndex: 0, SelectedOption: "1"},
		{QuestionIndex: 1, SelectedOption: ""},
		{QuestionIndex: 2, SelectedOption: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, 66.7, res.Score)
	assert.Equal(t, 3, res.TotalQuestions)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, []string{"Fractions"}, res.Analysis.WeakTopics)
}

func TestSubmitSubjectExam_NormalizesFractionScore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exams/submit", r.URL.Path)
		w.Write([]byte(`{
			"score":0.75,"correct_count":6,"total_questions":8,
			"weak_topics":[{"topic_id":"t1","topic_title":"Geometry","mastery_level":42.3}]
		}`))
	})

	res, err := c.SubmitSubjectExam(context.Background(), testSession(), "7", []exam.IDAnswer{
		{QuestionID: "1", SelectedOption: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, res.Score)
	assert.Equal(t, 6, res.CorrectCount)
	require.Len(t, res.WeakTopics, 1)
	assert.Equal(t, "Geometry", res.WeakTopics[0].TopicTitle)
}

func TestRegister_OmitsUnusedCodeField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		assert.JSONEq(t, `{"email":"a@b.kz","password":"secret1","full_name":"Aru B","role":"student","invite_code":"G-42"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"u-1"}`))
	})

	err := c.Register(context.Background(), RegisterInput{
		Email:      "a@b.kz",
		Password:   "secret1",
		FullName:   "Aru B",
		Role:       session.RoleStudent,
		InviteCode: "G-42",
	})
	require.NoError(t, err)
}
