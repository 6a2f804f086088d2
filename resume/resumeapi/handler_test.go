package resumeapi

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/resumeparser/internal/ai/structurer"
	"github.com/hirewire/resumeparser/pkg/errx"
	"github.com/hirewire/resumeparser/pkg/kernel"
	"github.com/hirewire/resumeparser/resume"
	"github.com/hirewire/resumeparser/resume/resumesrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	seq  int64
	rows map[kernel.ResumeID]*resume.Resume
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[kernel.ResumeID]*resume.Resume)}
}

func (m *memoryRepo) Upsert(_ context.Context, r *resume.Resume) (kernel.ResumeID, error) {
	stored := *r
	if r.HasEmail() {
		for id, existing := range m.rows {
			if existing.DedupEmail() == r.DedupEmail() {
				stored.ID = id
				m.rows[id] = &stored
				return id, nil
			}
		}
	}
	m.seq++
	stored.ID = kernel.NewResumeID(m.seq)
	m.rows[stored.ID] = &stored
	return stored.ID, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, resume.ErrResumeNotFound()
	}
	return r, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email kernel.Email) (*resume.Resume, error) {
	for _, r := range m.rows {
		if r.HasEmail() && r.DedupEmail() == email.Normalize() {
			return r, nil
		}
	}
	return nil, resume.ErrEmailNotFound()
}

func (m *memoryRepo) ListAll(_ context.Context) ([]*resume.Resume, error) {
	out := make([]*resume.Resume, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRepo) DeleteByID(_ context.Context, id kernel.ResumeID) error {
	if _, ok := m.rows[id]; !ok {
		return resume.ErrResumeNotFound()
	}
	delete(m.rows, id)
	return nil
}

type stubStructurer struct {
	response string
	err      error
}

func (s *stubStructurer) Structure(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testApp(repo resume.Repository, s resume.Structurer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	RegisterRoutes(app, NewHandlers(resumesrv.NewService(repo, s)))
	return app
}

func makeDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse-resume/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeRecord(t *testing.T, resp *http.Response) resume.Resume {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var r resume.Resume
	require.NoError(t, json.Unmarshal(body, &r))
	return r
}

const janeResponse = `{
	"personal_info": {"name": "Jane Doe", "email": "jane@acme.com"},
	"skills": ["SQL"],
	"work_experience": [],
	"projects": [],
	"education": []
}`

func TestParseUploadAndSearchRoundTrip(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: janeResponse})

	doc := makeDocx(t, "Jane Doe", "email: jane@acme.com", "Skills: SQL")
	resp, err := app.Test(uploadRequest(t, "resume.docx", doc))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	uploaded := decodeRecord(t, resp)
	require.NotNil(t, uploaded.PersonalInfo.Email)
	assert.Equal(t, "jane@acme.com", *uploaded.PersonalInfo.Email)
	assert.Equal(t, []string{"SQL"}, uploaded.Skills)

	// The search endpoint must return the identical record.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resumes/search/?email=jane@acme.com", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	found := decodeRecord(t, resp)
	assert.Equal(t, uploaded.ID, found.ID)
	assert.Equal(t, uploaded.PersonalInfo, found.PersonalInfo)
	assert.Equal(t, uploaded.Skills, found.Skills)
}

func TestParseUnsupportedExtension(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: janeResponse})

	resp, err := app.Test(uploadRequest(t, "resume.txt", []byte("plain text")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseCorruptUpload(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: janeResponse})

	resp, err := app.Test(uploadRequest(t, "resume.docx", []byte("not a real docx")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseInferenceUnavailable(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{err: fmt.Errorf("%w: connection refused", structurer.ErrUnavailable)})

	resp, err := app.Test(uploadRequest(t, "resume.docx", makeDocx(t, "Jane Doe")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestParseSchemaViolationMapsTo422(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: `{"skills": "Python, Go"}`})

	resp, err := app.Test(uploadRequest(t, "resume.docx", makeDocx(t, "Jane Doe")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetResumeByID(t *testing.T) {
	repo := newMemoryRepo()
	app := testApp(repo, &stubStructurer{response: janeResponse})

	resp, err := app.Test(uploadRequest(t, "resume.docx", makeDocx(t, "Jane Doe")))
	require.NoError(t, err)
	uploaded := decodeRecord(t, resp)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resumes/"+uploaded.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uploaded.ID, decodeRecord(t, resp).ID)
}

func TestGetResumeByIDNotFound(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/resumes/99", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Resume not found")
}

func TestSearchNotFoundMessage(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/resumes/search/?email=ghost@none.dev", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Resume not found for the provided email")
}

func TestListResumes(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: janeResponse})

	resp, err := app.Test(uploadRequest(t, "resume.docx", makeDocx(t, "Jane Doe")))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resumes/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var records []resume.Resume
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Len(t, records, 1)
}

func TestDeleteResumeTwice(t *testing.T) {
	app := testApp(newMemoryRepo(), &stubStructurer{response: janeResponse})

	resp, err := app.Test(uploadRequest(t, "resume.docx", makeDocx(t, "Jane Doe")))
	require.NoError(t, err)
	uploaded := decodeRecord(t, resp)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/resumes/"+uploaded.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/resumes/"+uploaded.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
