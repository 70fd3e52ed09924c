package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GoncaloNogueira1/filmhub/internal/tui/styles"
)

// LoginFormResult is emitted when the user submits the form.
type LoginFormResult struct {
	Email    string
	Password string
	Register bool
}

// LoginForm is the credential prompt shown while anonymous. Tab toggles
// between sign-in and sign-up; the same two fields serve both.
type LoginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	register bool
	errText  string
}

// NewLoginForm creates the form with the email field focused.
func NewLoginForm() *LoginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginForm{email: email, password: password}
}

// SetError shows a validation or auth failure under the form.
func (f *LoginForm) SetError(text string) { f.errText = text }

// Reset clears both fields and any error.
func (f *LoginForm) Reset() {
	f.email.SetValue("")
	f.password.SetValue("")
	f.errText = ""
	f.focus = 0
	f.email.Focus()
	f.password.Blur()
}

// Update handles form keystrokes. The second return value is non-nil on
// submit.
func (f *LoginForm) Update(msg tea.Msg) (tea.Cmd, *LoginFormResult) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			f.register = !f.register
			return nil, nil
		case "enter":
			if f.focus == 0 {
				f.focus = 1
				f.email.Blur()
				return f.password.Focus(), nil
			}
			email := strings.TrimSpace(f.email.Value())
			password := f.password.Value()
			if email == "" || password == "" {
				f.errText = "email and password are required"
				return nil, nil
			}
			return nil, &LoginFormResult{Email: email, Password: password, Register: f.register}
		case "up", "shift+tab":
			f.focus = 0
			f.password.Blur()
			return f.email.Focus(), nil
		case "down":
			f.focus = 1
			f.email.Blur()
			return f.password.Focus(), nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd, nil
}

// View renders the form.
func (f *LoginForm) View() string {
	var b strings.Builder

	title := "Sign in"
	if f.register {
		title = "Create account"
	}
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")

	if f.errText != "" {
		b.WriteString(styles.ErrorStyle.Render(f.errText))
		b.WriteString("\n")
	}

	hint := "enter submit · tab switch to sign up · ctrl+c quit"
	if f.register {
		hint = "enter submit · tab switch to sign in · ctrl+c quit"
	}
	b.WriteString(styles.DimStyle.Render(hint))

	return styles.ModalStyle.Render(b.String())
}
