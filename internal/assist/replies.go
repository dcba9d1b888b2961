// internal/assist/replies.go
package assist

import (
	"fmt"
	"math"

	"assist-server/internal/clients/forecast"
	"assist-server/internal/nlp/intent"
	"assist-server/internal/nlp/style"
)

const (
	replyEmptyQuery  = "Пустой запрос."
	replyServerError = "Ошибка при обработке запроса."
	replySearchOff   = "Поиск временно недоступен (ключ не задан/не ASCII)."
)

// cannedReplies holds the fixed (intent, style) reply strings.
var cannedReplies = map[intent.Intent]map[style.Style]string{
	intent.Greeting: {
		style.Friendly: "Йо! 👋 Рад тебя видеть 😎",
		style.Formal:   "Здравствуйте!",
	},
	intent.HowAreYou: {
		style.Friendly: "Да нормас, всё чётко 😎 А у тебя как?",
		style.Formal:   "У меня всё хорошо, спасибо. Как у вас дела?",
	},
	intent.Thanks: {
		style.Friendly: "Пожалуйста! 🙌",
		style.Formal:   "Пожалуйста.",
	},
	intent.Bye: {
		style.Friendly: "До связи! 👋",
		style.Formal:   "До свидания!",
	},
	intent.SmallTalk: {
		style.Friendly: "Понял 👍 Спроси что-то конкретнее.",
		style.Formal:   "Понимаю. Уточните, пожалуйста.",
	},
	intent.GeneralChat: {
		style.Friendly: "Окей, понял тебя. Могу добавить фактов или ссылок, если надо 😉",
		style.Formal:   "Понимаю. Если нужно, могу добавить справку или ссылки.",
	},
}

func timeReply(st style.Style, clock string) string {
	if st == style.Friendly {
		return fmt.Sprintf("Бро, сейчас %s 😉", clock)
	}
	return fmt.Sprintf("Сейчас %s.", clock)
}

func askPlaceReply(st style.Style) string {
	if st == style.Friendly {
		return "Скажи город: «погода в Токио»"
	}
	return "Уточните город: «погода в Токио»."
}

func placeNotFoundReply(st style.Style, place string) string {
	if st == style.Friendly {
		return fmt.Sprintf("Не нашёл локацию «%s» 😅", place)
	}
	return fmt.Sprintf("Локация «%s» не найдена.", place)
}

func nothingFoundReply(query string) string {
	return fmt.Sprintf("Ничего не найдено по «%s».", query)
}

// wmoDescriptions maps WMO weather codes to short Russian phrases.
var wmoDescriptions = map[int]string{
	0:  "ясно",
	1:  "в основном ясно",
	2:  "переменная облачность",
	3:  "пасмурно",
	45: "туман",
	48: "изморозь",
	51: "лёгкая морось",
	53: "морось",
	55: "сильная морось",
	56: "ледяная морось",
	57: "сильная ледяная морось",
	61: "небольшой дождь",
	63: "дождь",
	65: "сильный дождь",
	66: "ледяной дождь",
	67: "сильный ледяной дождь",
	71: "небольшой снег",
	73: "снег",
	75: "сильный снег",
	77: "снежные зёрна",
	80: "ливни",
	81: "сильные ливни",
	82: "очень сильные ливни",
	85: "снегопад",
	86: "сильный снегопад",
	95: "гроза",
	96: "гроза с градом",
	99: "сильная гроза с градом",
}

// weatherDescription maps a numeric code to a human phrase; unknown codes get
// the generic label.
func weatherDescription(code int) string {
	if desc, ok := wmoDescriptions[code]; ok {
		return desc
	}
	return "погода"
}

// weatherReply composes the style-dependent forecast line.
func weatherReply(st style.Style, label string, snap *forecast.Snapshot) string {
	desc := weatherDescription(snap.WeatherCode)

	temp := "—"
	if snap.Temperature != nil {
		temp = fmt.Sprintf("%d°C", int(math.Round(*snap.Temperature)))
	}
	wind := "—"
	if snap.WindSpeed != nil {
		wind = fmt.Sprintf("%d м/с", int(math.Round(*snap.WindSpeed)))
	}

	var line string
	if st == style.Friendly {
		line = fmt.Sprintf("В %s сейчас %s (%s). Ветер %s.", label, temp, desc, wind)
	} else {
		line = fmt.Sprintf("Сейчас в %s: %s (%s). Ветер %s.", label, temp, desc, wind)
	}

	if snap.TempMax != nil && snap.TempMin != nil {
		line += fmt.Sprintf(" Диапазон на сегодня: %d…%d°C.",
			int(math.Round(*snap.TempMin)), int(math.Round(*snap.TempMax)))
	}
	if snap.PrecipProb != nil {
		if st == style.Friendly {
			line += fmt.Sprintf(" Осадки: %d%%", *snap.PrecipProb)
		} else {
			line += fmt.Sprintf(" Вероятность осадков: %d%%", *snap.PrecipProb)
		}
	}
	return line
}
