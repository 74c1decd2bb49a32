package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONStripsFences(t *testing.T) {
	raw := "```json\n{\"id\": \"q1\"}\n```"
	assert.Equal(t, `{"id": "q1"}`, ExtractJSON(raw))
}

func TestExtractJSONFindsObjectInProse(t *testing.T) {
	raw := `Đây là câu hỏi của bạn: {"id": "q1", "text": "x"} Chúc may mắn!`
	assert.Equal(t, `{"id": "q1", "text": "x"}`, ExtractJSON(raw))
}

func TestExtractJSONFindsArray(t *testing.T) {
	raw := "Kết quả:\n[{\"id\": \"r1\"}]"
	assert.Equal(t, `[{"id": "r1"}]`, ExtractJSON(raw))
}

func TestExtractJSONReversedDelimiters(t *testing.T) {
	// A closing delimiter before any opening one must not be treated as
	// a JSON span; the trimmed text comes back for the decoder to reject.
	cases := []string{
		"} xin lỗi, đây là {",
		"] không có dữ liệu [",
		"}{",
		"][",
	}
	for _, raw := range cases {
		assert.NotPanics(t, func() {
			out := ExtractJSON(raw)
			assert.Equal(t, raw, out)
		})
	}

	q, err := DecodeQuestion("} xin lỗi, đây là {")
	assert.Nil(t, q)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeQuestionValid(t *testing.T) {
	raw := `{
		"id": "q1",
		"text": "1 + 1 = ?",
		"options": ["1", "2", "3", "4"],
		"correctAnswer": 1,
		"explanation": "Cộng cơ bản."
	}`
	q, err := DecodeQuestion(raw)
	require.NoError(t, err)
	assert.Equal(t, "1 + 1 = ?", q.Text)
	assert.Equal(t, 1, q.CorrectAnswer)
}

func TestDecodeQuestionMalformed(t *testing.T) {
	cases := []string{
		"xin lỗi, tôi không thể tạo câu hỏi",
		`{"id": "q1", "text": "x", "options": ["a", "b"], "correctAnswer": 0}`,
		`{"id": "q1", "text": "x", "options": ["a", "b", "c", "d"], "correctAnswer": 7}`,
	}
	for _, raw := range cases {
		q, err := DecodeQuestion(raw)
		assert.Nil(t, q)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestDecodePlanForcesIncomplete(t *testing.T) {
	raw := `{
		"subject": "Toán",
		"duration": "2 tuần",
		"weeks": [
			{"week": 1, "days": [
				{"day": 1, "tasks": [{"id": "t1", "description": "Ôn tập", "completed": true}]}
			]}
		]
	}`
	plan, err := DecodePlan(raw)
	require.NoError(t, err)
	assert.False(t, plan.Weeks[0].Days[0].Tasks[0].Completed)
	assert.Nil(t, plan.Weeks[0].Days[0].Tasks[0].QuizTaken)
}

func TestDecodePlanMalformed(t *testing.T) {
	_, err := DecodePlan(`{"subject": "Toán", "weeks": []}`)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodePlan(`{"subject": "Toán", "weeks": [{"week": 1, "days": [{"day": 1, "tasks": [{"id": "", "description": ""}]}]}]}`)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeResourcesFiltersInvalid(t *testing.T) {
	raw := `[
		{"id": "r1", "title": "Video", "type": "video", "url": "https://a", "authority": "High"},
		{"id": "", "title": "thiếu id", "type": "video", "url": "https://b"},
		{"id": "r3", "title": "Sai loại", "type": "podcast", "url": "https://c"},
		{"id": "r4", "title": "Bài viết", "type": "article", "url": "https://d", "authority": "Thấp"}
	]`
	resources, err := DecodeResources(raw)
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "r1", resources[0].ID)
	// Unknown authority levels fall back to Medium
	assert.Equal(t, "Medium", resources[1].Authority)
}

func TestDecodeResourcesAllInvalid(t *testing.T) {
	_, err := DecodeResources(`[{"id": "", "title": "", "type": "x", "url": ""}]`)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeResources("không phải JSON")
	assert.ErrorIs(t, err, ErrMalformed)
}
