// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// Error messages.
const (
	msgPickCategoryFirst = "请先选择分类和子分类：/categories"
	msgNoWords           = "暂无单词"
	msgStoreUnavailable  = "服务暂时不可用，请稍后重试。"
	msgForbidden         = "你没有管理员权限。"
	msgNotFound          = "未找到，请确认对方已经使用过本机器人。"
	msgInvalidInput      = "输入无效，请重试。"
	msgInternalError     = "出了点问题，请稍后再试。"
	msgQuestionExpired   = "题目已过期"
	msgUnknownCommand    = "未知命令。发送 /help 查看可用命令。"
	msgUnknownInput      = "请使用命令操作，发送 /help 查看帮助。"
)

// Navigation and feature messages.
const (
	msgWelcome = "안녕하세요! 👋 这是 <b>TOPIK 韩语单词</b>助手。\n\n" +
		"先用 /categories 选择分类和子分类，然后可以：\n" +
		"/words — 查看单词列表\n" +
		"/random — 随机10个单词\n" +
		"/flash — 闪卡练习\n" +
		"/quiz — 测验（输入中文释义）\n" +
		"/choice — 选择题测验\n" +
		"/progress — 我的进度"

	msgHelp = "<b>可用命令</b>\n\n" +
		"/categories — 选择分类和子分类\n" +
		"/words — 当前子分类的单词列表\n" +
		"/random — 当前子分类随机抽10个单词\n" +
		"/flash — 随机抽一张闪卡\n" +
		"/quiz — 测验：直接回复中文释义\n" +
		"/choice — 选择题测验\n" +
		"/progress — 认识 / 不认识的单词数\n\n" +
		"同一个韩语单词出现在多个分类时，标记会同步到所有分类。"

	msgPickCategory     = "📚 请选择分类："
	msgEmptyCatalog     = "词库还是空的，请先导入单词。"
	msgNoSubcategories  = "该分类下还没有子分类。"
	msgTypedHint        = "（直接回复中文释义）"
	msgGrantUsage       = "用法：/grant @用户名 或 /grant 用户ID"
	msgNoProgress       = "还没有进度数据。用 /flash 或 /quiz 开始练习吧！"
	msgMembershipActive = "已开通"
	msgMembershipNone   = "未开通"
)

// Button labels.
const (
	btnBack        = "« 返回分类"
	btnKnown       = "✅ 认识"
	btnWrong       = "❌ 不认识"
	btnDraw        = "🎲 再抽一张"
	btnRandom      = "🎲 随机10个"
	btnRandomAgain = "🎲 再来10个"
	btnFlash       = "🎴 闪卡"
	btnQuiz        = "✏️ 测验"
	btnChoice      = "🔘 选择题"
	btnNext        = "➡️ 下一题"
)

// maxMessageLength is the Telegram limit for one text message.
const maxMessageLength = 4096

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func formatSubcategoryPrompt(c entities.Category) string {
	return fmt.Sprintf("📂 <b>%s</b>\n请选择子分类：", escape(c.Name))
}

func formatSelected(sel entities.Selection) string {
	return fmt.Sprintf("✅ 已选择：<b>%s</b>", escape(sel.Title()))
}

// formatWordList renders a word list with the user's status marks.
func formatWordList(sel entities.Selection, words []entities.WordEntry, statuses map[int64]entities.Status) string {
	if len(words) == 0 {
		return fmt.Sprintf("<b>%s</b>\n\n%s", escape(sel.Title()), msgNoWords)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>（%d 个）\n", escape(sel.Title()), len(words))

	for i, w := range words {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%d. <b>%s</b> — %s", i+1, escape(w.SurfaceForm), escape(w.Gloss))
		if w.PartOfSpeech != "" {
			fmt.Fprintf(&sb, " <i>%s</i>", escape(w.PartOfSpeech))
		}
		if mark := statusMark(statuses[w.ID]); mark != "" {
			sb.WriteString(" " + mark)
		}
		if w.HasExample() {
			fmt.Fprintf(&sb, "\n    %s", escape(w.ExampleKR))
			if w.ExampleZH != "" {
				fmt.Fprintf(&sb, " / %s", escape(w.ExampleZH))
			}
		}
	}

	return sb.String()
}

// formatRandomWords renders a random sample under its own heading.
func formatRandomWords(sel entities.Selection, words []entities.WordEntry, statuses map[int64]entities.Status) string {
	list := formatWordList(sel, words, statuses)
	return fmt.Sprintf("🎲 <b>随机 %d 个</b>\n%s", len(words), list)
}

func statusMark(s entities.Status) string {
	switch s {
	case entities.StatusKnown:
		return "✅"
	case entities.StatusWrong:
		return "❌"
	default:
		return ""
	}
}

// formatFlashcard renders a card with the meaning hidden behind a spoiler.
func formatFlashcard(card *entities.Flashcard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎴 <i>%s</i>\n\n", escape(card.Title))
	fmt.Fprintf(&sb, "韩语：<b>%s</b>\n", escape(card.Word.SurfaceForm))
	fmt.Fprintf(&sb, "中文：<tg-spoiler>%s</tg-spoiler>", escape(card.Word.Gloss))
	if card.Word.PartOfSpeech != "" {
		fmt.Fprintf(&sb, "\n词性：%s", escape(card.Word.PartOfSpeech))
	}
	if card.Word.HasExample() {
		fmt.Fprintf(&sb, "\n\n例句：%s", escape(card.Word.ExampleKR))
		if card.Word.ExampleZH != "" {
			fmt.Fprintf(&sb, "\n<tg-spoiler>%s</tg-spoiler>", escape(card.Word.ExampleZH))
		}
	}
	return sb.String()
}

func formatMarked(res *entities.ReconciliationResult) string {
	return fmt.Sprintf("已记录 %s：%d 个词条", statusMark(res.Status), res.Upserted)
}

func formatQuestion(q *entities.Question) string {
	text := "✏️ " + escape(q.Prompt)
	if q.Mode == entities.QuizModeTyped {
		text += "\n" + msgTypedHint
	}
	return text
}

// formatQuizResult renders the verdict on an answer.
func formatQuizResult(q *entities.Question, qa *entities.QuizAnswer) string {
	var sb strings.Builder
	sb.WriteString(escape(q.Prompt) + "\n\n")
	if qa.IsCorrect {
		sb.WriteString("✅ 答对了！")
	} else {
		fmt.Fprintf(&sb, "❌ 答错了，正确答案：<b>%s</b>", escape(qa.CorrectAnswer))
	}
	if qa.Reconciliation != nil && qa.Reconciliation.Upserted > 1 {
		fmt.Fprintf(&sb, "\n（已同步 %d 个同形词条）", qa.Reconciliation.Upserted)
	}
	return sb.String()
}

func formatProgress(summary *entities.ProgressSummary, membershipActive bool) string {
	membership := msgMembershipNone
	if membershipActive {
		membership = msgMembershipActive
	}

	if summary.Total() == 0 {
		return fmt.Sprintf("<b>📊 我的进度</b>\n\n%s\n\n💎 会员：%s", msgNoProgress, membership)
	}

	return fmt.Sprintf(
		"<b>📊 我的进度</b>\n\n"+
			"%s\n\n"+
			"✅ <b>认识：</b>%d 个\n"+
			"❌ <b>不认识：</b>%d 个\n"+
			"📖 <b>总计：</b>%d 个（认识 %.1f%%）\n\n"+
			"💎 会员：%s",
		buildProgressBar(summary.KnownCount, summary.Total(), 20),
		summary.KnownCount,
		summary.WrongCount,
		summary.Total(),
		summary.KnownPercentage(),
		membership,
	)
}

func formatGranted(u *entities.User) string {
	name := u.FirstName
	if u.Username != "" {
		name = "@" + u.Username
	}
	if name == "" {
		name = fmt.Sprintf("%d", u.ID)
	}
	return fmt.Sprintf("💎 已为 %s 开通会员。", escape(name))
}

func formatDigest(p entities.ReminderPayload) string {
	return fmt.Sprintf(
		"📚 <b>复习提醒</b>\n\n今天有 <b>%d</b> 个单词需要复习（已掌握 %d 个）。\n先用 /categories 选择子分类，再用闪卡或测验练习吧！",
		p.WrongCount,
		p.KnownCount,
	)
}

// splitMessage cuts text at line boundaries into chunks that fit one message.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		sb     strings.Builder
		size   int
	)
	for _, line := range strings.Split(text, "\n") {
		n := len([]rune(line)) + 1
		if size > 0 && size+n > limit {
			chunks = append(chunks, strings.TrimRight(sb.String(), "\n"))
			sb.Reset()
			size = 0
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		size += n
	}
	if size > 0 {
		chunks = append(chunks, strings.TrimRight(sb.String(), "\n"))
	}
	return chunks
}
