package bot

import (
	"fmt"
	"strings"

	"attendance-bot-backend/internal/parse"
)

// Reply text fragments. These mirror the wording users already know from the
// previous incarnation of the bot, so they are kept verbatim.
const (
	msgFormatHelp = "【勤怠連絡フォーマット】\n" +
		"【勤怠連絡】\n" +
		"氏名：　〇〇　〇〇\n" +
		"種別：　[全休/午前休/午後休/遅刻/早退/特別休/休出/取消] から選択\n" +
		"日付：　YYYYMMDD (複数日付: カンマ区切り、範囲指定: YYYYMMDD-YYYYMMDD)\n" +
		"備考：　〇〇のため\n\n" +
		"【日付指定例】\n" +
		"・単一日付: 20250115\n" +
		"・複数日付: 20250115,20250116,20250117\n" +
		"・範囲指定: 20250115-20250117\n\n" +
		"【取消について】\n" +
		"種別に「取消」を指定すると、指定日付の予定を削除します。"

	msgFormatError = "申し訳ございません。フォーマットが正しくありません。\n\n"

	msgAttendanceReceived   = "✅ 勤怠連絡を受け付けました！\n"
	msgCancellationReceived = "✅ 勤怠取消を受け付けました！\n"

	msgCalendarError = "❌ 申し訳ございません。カレンダーへの追加に失敗しました。\nエラー: "
	msgDeleteError   = "❌ 申し訳ございません。イベントの削除に失敗しました。\nエラー: "

	displaySeparator = "─────────────────\n"
)

// helpMessage greets the sender and shows the expected format.
func helpMessage(userName string) string {
	return fmt.Sprintf("こんにちは、%sさん！\n勤怠連絡を受け付けています。\n\n%s", userName, msgFormatHelp)
}

// formatErrorMessage is the reply to a message that did not match the
// template.
func formatErrorMessage() string {
	return msgFormatError + msgFormatHelp
}

// requestDisplay echoes the parsed request back to the sender. The date line
// shows the user's verbatim date-spec, not a canonicalized list.
func requestDisplay(req parse.Request, reporter string) string {
	var b strings.Builder
	b.WriteString("\n氏名: " + req.PersonName + "\n")
	b.WriteString("種別: " + string(req.Type) + "\n")
	b.WriteString("日付: " + req.OriginalDateText + "\n")
	b.WriteString("備考: " + req.Remarks + "\n")
	b.WriteString(displaySeparator)
	b.WriteString("申請: " + reporter + "\n\n")
	return b.String()
}

// createSummaryMessage renders the reply for a create-path request.
func createSummaryMessage(req parse.Request, reporter string, succeeded, failed int) string {
	msg := msgAttendanceReceived + requestDisplay(req, reporter)
	if succeeded > 0 {
		msg += fmt.Sprintf("✅ %d件の予定をカレンダーに追加しました。", succeeded)
	}
	if failed > 0 {
		msg += fmt.Sprintf("\n❌ %d件の追加に失敗しました。", failed)
	}
	return msg
}

// cancelSummaryMessage renders the reply for a cancellation request.
func cancelSummaryMessage(req parse.Request, reporter string, deleted, failed int) string {
	msg := msgCancellationReceived + requestDisplay(req, reporter)
	if deleted > 0 {
		msg += fmt.Sprintf("✅ %sさんの%d件の予定をカレンダーから削除しました。", req.PersonName, deleted)
	} else {
		msg += fmt.Sprintf("ℹ️ 指定された日付に%sさんの削除対象の予定はありませんでした。", req.PersonName)
	}
	if failed > 0 {
		msg += fmt.Sprintf("\n❌ %d件の削除に失敗しました。", failed)
	}
	return msg
}
