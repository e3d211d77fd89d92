package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultAPIURL = "http://localhost:5000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepEnteringName
	stepEnteringAddress
	stepEnteringDescription
	stepCreatingHouse
	stepComplete
)

// prompts for the steps that read a line of input.
var prompts = map[step]string{
	stepEnteringEmail:       "Enter your email:",
	stepEnteringPassword:    "Enter your password:",
	stepEnteringName:        "House name:",
	stepEnteringAddress:     "Address:",
	stepEnteringDescription: "Description:",
}

type model struct {
	api          *apiClient
	step         step
	email        string
	password     string
	token        string
	name         string
	address      string
	description  string
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{ token string }
type houseCreatedMsg struct{ house *createdHouse }
type errMsg struct {
	err  error
	back step
}

func initialModel(api *apiClient) model {
	return model{api: api, step: stepEnteringEmail}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(api *apiClient, email, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := api.login(email, password)
		if err != nil {
			return errMsg{err: fmt.Errorf("login failed: %w", err), back: stepEnteringEmail}
		}
		return loginSuccessMsg{token: token}
	}
}

func createHouse(api *apiClient, token, name, address, description string) tea.Cmd {
	return func() tea.Msg {
		h, err := api.createHouse(token, map[string]string{
			"name":        name,
			"address":     address,
			"description": description,
		})
		if err != nil {
			return errMsg{err: err, back: stepEnteringName}
		}
		return houseCreatedMsg{house: h}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				r := []rune(m.currentInput)
				m.currentInput = string(r[:len(r)-1])
			}

		case tea.KeyRunes, tea.KeySpace:
			if _, ok := prompts[m.step]; ok {
				m.currentInput += string(msg.Runes)
			}

		case tea.KeyEnter:
			return m.submit()
		}

	case loginSuccessMsg:
		m.token = msg.token
		m.password = ""
		m.step = stepEnteringName
		m.message = successStyle.Render("✓ Logged in as " + m.email)

	case houseCreatedMsg:
		m.step = stepComplete
		m.message = successStyle.Render(fmt.Sprintf("✓ Published %s (%s)", msg.house.Name, msg.house.Slug))

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = msg.back
	}

	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.currentInput)
	if m.step == stepComplete {
		m.quitting = true
		return m, tea.Quit
	}
	if _, ok := prompts[m.step]; !ok || input == "" {
		return m, nil
	}
	m.currentInput = ""

	switch m.step {
	case stepEnteringEmail:
		m.email = input
		m.step = stepEnteringPassword
	case stepEnteringPassword:
		m.password = input
		m.step = stepLoggingIn
		m.message = "Logging in..."
		return m, loginUser(m.api, m.email, m.password)
	case stepEnteringName:
		m.name = input
		m.step = stepEnteringAddress
	case stepEnteringAddress:
		m.address = input
		m.step = stepEnteringDescription
	case stepEnteringDescription:
		m.description = input
		m.step = stepCreatingHouse
		m.message = "Publishing house..."
		return m, createHouse(m.api, m.token, m.name, m.address, m.description)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("House Setup"))
	s.WriteString("\n\n")

	if m.message != "" && m.step != stepLoggingIn && m.step != stepCreatingHouse {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepLoggingIn, stepCreatingHouse:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString("Press Enter to exit\n")

	default:
		shown := m.currentInput
		if m.step == stepEnteringPassword {
			shown = strings.Repeat("•", len([]rune(m.currentInput)))
		}
		s.WriteString(promptStyle.Render(prompts[m.step]) + "\n")
		s.WriteString(inputStyle.Render("> " + shown))
		s.WriteString("\n\nPress Enter, Esc to quit\n")
	}

	return s.String()
}

func main() {
	baseURL := os.Getenv("HOUSES_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	p := tea.NewProgram(initialModel(newAPIClient(baseURL)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
