package view

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "writerfolio-flash"
	flashKeySuccess  = "success"
	flashKeyError    = "error"

	// flashSaveKey marks a request whose flash session is already due to be saved.
	flashSaveKey = "writerfolio.flashSave"
)

// FlashData holds the messages shown once at the top of the next page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool { return len(f.Success) == 0 && len(f.Error) == 0 }

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		c.Logger().Warnf("flash session unavailable: %v", err)
		return
	}
	sess.AddFlash(message, key)
	saveOnce(c, sess)
}

// saveOnce writes the flash cookie a single time, just before the headers
// go out, however many messages the handler added.
func saveOnce(c echo.Context, sess *sessions.Session) {
	if c.Get(flashSaveKey) != nil {
		return
	}
	c.Set(flashSaveKey, true)
	c.Response().Before(func() {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			c.Logger().Warnf("saving flash session: %v", err)
		}
	})
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() clears what it returns, so the session must be saved afterwards.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)
	if len(successFlashes) == 0 && len(errorFlashes) == 0 {
		return data
	}

	data.Success = toStrings(successFlashes)
	data.Error = toStrings(errorFlashes)
	saveOnce(c, sess)
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Success returns FlashData holding one success message.
func Success(message string) FlashData { return FlashData{Success: []string{message}} }

// Error returns FlashData holding one error message.
func Error(message string) FlashData { return FlashData{Error: []string{message}} }
