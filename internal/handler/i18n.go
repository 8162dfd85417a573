package handler

import "github.com/traveljournal/internal/locale"

// uiText returns the fixed interface strings for language.
func uiText(language string) map[string]string {
	pick := func(english, chinese string) string {
		return locale.Pick(language, english, chinese)
	}
	return map[string]string{
		"home":         pick("Home", "首页"),
		"heading":      pick("See the world through your stories", "用你的故事看世界"),
		"intro":        pick("Share your trips with beautiful images, locations, and memories. New posts appear here as soon as they are published.", "用照片、地点和回忆记录每一次旅行。新的文章发布后会自动出现在这里。"),
		"emptyTitle":   pick("No trips yet.", "还没有旅行记录。"),
		"emptyHint":    pick(`Insert your first post into the "posts" table. This page updates automatically.`, "在 posts 表中添加第一篇文章，本页面会自动更新。"),
		"back":         pick("← Back to all trips", "← 返回全部旅行"),
		"notFound":     pick("Not found", "页面不存在"),
		"notFoundHint": pick("The page you’re looking for doesn’t exist or has been moved.", "你要找的页面不存在或已被移动。"),
		"goHome":       pick("Go home", "返回首页"),
	}
}
