package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-3-flash-preview"

// documentContextLimit caps how much extracted document text is injected
// into the system instruction for document chat.
const documentContextLimit = 20000

// truncateRunes cuts s to at most limit bytes without splitting a rune.
// Vietnamese document text is full of multi-byte characters, so a plain
// byte slice could send invalid UTF-8 to the model.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Generator is the Gemini-backed content generator: quizzes, study
// plans, resource discovery, document chat and note enhancement.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini client. An empty key returns ErrNoAPIKey
// so callers can surface a configure-your-key message instead of failing
// requests one by one.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	return &Generator{client: client, model: model}, nil
}

// systemInstruction derives the persona string from the user's profile
// and the role the generator plays for this request.
func systemInstruction(mem models.UserMemory, role string) string {
	return fmt.Sprintf(`Bạn là Mind Mentor, một trợ lý học tập AI thông minh, điềm tĩnh và chuyên nghiệp.

THÔNG TIN NGƯỜI DÙNG:
Tên: %s
Lớp: %s (Hệ thống giáo dục Việt Nam)

VAI TRÒ CỦA BẠN:
Hiện tại bạn đang đóng vai trò: %s.

NGUYÊN TẮC:
1. Ngôn ngữ: 100%% Tiếng Việt.
2. Nội dung: Chính xác, phù hợp giáo dục Việt Nam.`, mem.Name, mem.Grade, role)
}

// generate sends one prompt and returns the raw reply text
func (g *Generator) generate(ctx context.Context, prompt, instruction string, wantJSON bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	if wantJSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generator request failed: %v", err)
	}
	return resp.Text(), nil
}

// GenerateQuiz builds one multiple-choice question checking a study task
func (g *Generator) GenerateQuiz(ctx context.Context, taskDescription string, mem models.UserMemory) (*models.Question, error) {
	prompt := fmt.Sprintf(`Dựa trên nhiệm vụ học tập: "%s".
Hãy tạo 1 câu hỏi trắc nghiệm (Multiple Choice) để kiểm tra xem học sinh đã hiểu bài chưa.
Trình độ: %s.

Trả về JSON duy nhất (không markdown):
{
  "id": "q1",
  "text": "Nội dung câu hỏi?",
  "options": ["Đáp án A", "Đáp án B", "Đáp án C", "Đáp án D"],
  "correctAnswer": 0,
  "explanation": "Giải thích ngắn gọn tại sao đáp án này đúng."
}`, taskDescription, mem.Grade)

	text, err := g.generate(ctx, prompt, systemInstruction(mem, "Giáo viên Kiểm tra"), true)
	if err != nil {
		return nil, err
	}
	return DecodeQuestion(text)
}

// GeneratePlan builds a week-by-week study plan for a subject. The plan
// id and creation time are assigned here, not by the model.
func (g *Generator) GeneratePlan(ctx context.Context, subject, duration string, mem models.UserMemory) (*models.StudyPlan, error) {
	prompt := fmt.Sprintf(`Lập lộ trình học tập chi tiết cho môn "%s" trong thời gian "%s".
Học sinh đang học %s.
Các phần kiến thức học sinh còn yếu: %s.

Yêu cầu:
- Bám sát chương trình %s của Việt Nam.
- Chia nhỏ nhiệm vụ cụ thể.

Trả về định dạng JSON CHÍNH XÁC theo mẫu sau (không thêm markdown code block, không thêm lời dẫn):
{
  "subject": "%s",
  "duration": "%s",
  "weeks": [
    {
      "week": 1,
      "days": [
        {
          "day": 1,
          "tasks": [
            { "id": "t1", "description": "Tên nhiệm vụ cụ thể (VD: Ôn tập chương 1 SGK)", "completed": false }
          ]
        }
      ]
    }
  ]
}`, subject, duration, mem.Grade, strings.Join(mem.Weaknesses, ", "), mem.Grade, subject, duration)

	text, err := g.generate(ctx, prompt, systemInstruction(mem, "Chuyên gia Lập kế hoạch Giáo dục"), true)
	if err != nil {
		return nil, err
	}
	plan, err := DecodePlan(text)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UnixMilli()
	return plan, nil
}

// DiscoverResources asks for free, high-quality study materials
func (g *Generator) DiscoverResources(ctx context.Context, subject string, mem models.UserMemory) ([]models.Resource, error) {
	prompt := fmt.Sprintf(`Tìm 5 tài liệu học tập trực tuyến chất lượng cao, miễn phí cho môn "%s" trình độ %s tại Việt Nam.
Ưu tiên các nguồn: VietJack, Hocmai, OLM, Vuihoc, hoặc kênh Youtube giáo dục uy tín của Việt Nam.

Trả về định dạng JSON (không markdown):
[
  {
    "id": "unique_id",
    "title": "Tên tài liệu",
    "type": "video" | "article" | "exercise",
    "url": "https://example.com",
    "authority": "High",
    "description": "Mô tả ngắn gọn về nội dung."
  }
]`, subject, mem.Grade)

	text, err := g.generate(ctx, prompt, systemInstruction(mem, "Thủ thư Học thuật"), true)
	if err != nil {
		return nil, err
	}
	return DecodeResources(text)
}

// Chat answers one turn of a document-chat conversation. The extracted
// document text rides in the system instruction; history carries the
// prior turns.
func (g *Generator) Chat(ctx context.Context, message string, history []models.ChatMessage, documentContext string, mem models.UserMemory) (string, error) {
	documentContext = truncateRunes(documentContext, documentContextLimit)
	instruction := fmt.Sprintf(`%s

BỐI CẢNH TÀI LIỆU:
%s

Hãy trả lời câu hỏi dựa trên tài liệu được cung cấp. Giải thích dễ hiểu, phù hợp với học sinh %s.`,
		systemInstruction(mem, "Trợ lý Tài liệu Scriba"), documentContext, mem.Grade)

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generator request failed: %v", err)
	}
	return resp.Text(), nil
}

// NoteAction selects what EnhanceNote does with the note content
type NoteAction string

const (
	NoteSummarize NoteAction = "summarize"
	NoteSimplify  NoteAction = "simplify"
	NoteQuiz      NoteAction = "quiz"
)

// EnhanceNote rewrites or questions a note's content
func (g *Generator) EnhanceNote(ctx context.Context, content string, action NoteAction, mem models.UserMemory) (string, error) {
	var request string
	switch action {
	case NoteSummarize:
		request = "Tóm tắt ghi chú này thành 3 ý chính quan trọng nhất."
	case NoteSimplify:
		request = "Giải thích khái niệm này một cách đơn giản nhất, lấy ví dụ thực tế."
	case NoteQuiz:
		request = "Tạo 3 câu hỏi trắc nghiệm ôn tập dựa trên ghi chú này (có đáp án)."
	default:
		return "", fmt.Errorf("unknown note action: %s", action)
	}

	prompt := fmt.Sprintf("Nội dung: %q\n\nYêu cầu: %s", content, request)
	return g.generate(ctx, prompt, systemInstruction(mem, "Gia sư Riêng"), false)
}
