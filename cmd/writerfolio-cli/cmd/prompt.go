package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/nfrund/writerfolio/internal/domain"
)

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func promptCredentials(userLabel, passLabel string) (domain.Credentials, error) {
	user := promptui.Prompt{Label: userLabel, Validate: required}
	username, err := user.Run()
	if err != nil {
		return domain.Credentials{}, err
	}
	pass := promptui.Prompt{Label: passLabel, Mask: '*', Validate: required}
	password, err := pass.Run()
	if err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Username: strings.TrimSpace(username), Password: password}, nil
}
