package services

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/storage"
)

// generatePlayerID выдаёт идентификатор вида "P1234567890": буква P,
// шесть последних цифр unix-времени в миллисекундах и четыре случайные
// цифры. Уникальность вероятностная, не гарантированная.
func generatePlayerID() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	digits := make([]byte, 4)
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		now := time.Now().UnixNano()
		for i := range digits {
			digits[i] = byte('0' + (now>>uint(i*8))%10)
		}
	} else {
		for i, rb := range randomBytes {
			digits[i] = byte('0' + int(rb)%10)
		}
	}

	return "P" + millis + string(digits)
}

// usernameFromEmail выделяет локальную часть email для имени
// пользователя нового профиля.
func usernameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return "user"
	}
	return local
}

// dedupeUsername добавляет суффикс из последних четырёх цифр
// unix-времени при коллизии имени.
func dedupeUsername(username string) string {
	suffix := strconv.FormatInt(time.Now().Unix(), 10)
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("%s_%s", username, suffix)
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if strings.Contains(username, " ") {
		return ErrUsernameHasSpaces
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimToNil нормализует опциональные текстовые поля: пустая строка
// после обрезки пробелов превращается в NULL.
func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}
