package models

import "stash/internal/httperr"

// SecurityQuestion is a question/answer pair embedded in a Login. It has no
// identity of its own and is serialized inline.
type SecurityQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func securityQuestionFromWire(body map[string]any) (SecurityQuestion, *httperr.Error) {
	if err := VerifyBody("SecurityQuestion", body, []string{"question", "answer"}, nil); err != nil {
		return SecurityQuestion{}, err
	}
	question, err := stringField(body, "question", "SecurityQuestion")
	if err != nil {
		return SecurityQuestion{}, err
	}
	answer, err := stringField(body, "answer", "SecurityQuestion")
	if err != nil {
		return SecurityQuestion{}, err
	}
	return SecurityQuestion{Question: question, Answer: answer}, nil
}

// Login records the credentials for one application.
type Login struct {
	ID                string             `json:"-"`
	Application       string             `json:"application"`
	Password          string             `json:"password"`
	URL               string             `json:"url"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	SecurityQuestions []SecurityQuestion `json:"security_questions"`
	Tags              []string           `json:"tags"`
}

func (l *Login) Collection() string       { return "logins" }
func (l *Login) RecordID() string         { return l.ID }
func (l *Login) SetRecordID(id string)    { l.ID = id }
func (l *Login) TagList() []string        { return l.Tags }
func (l *Login) SetTagList(tags []string) { l.Tags = tags }

func LoginFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	err := VerifyBody("Login", body,
		[]string{"application", "password"},
		[]string{"url", "username", "email", "security_questions", "tags"})
	if err != nil {
		return nil, err
	}
	application, err := stringField(body, "application", "Login")
	if err != nil {
		return nil, err
	}
	password, err := stringField(body, "password", "Login")
	if err != nil {
		return nil, err
	}
	url, err := stringField(body, "url", "Login")
	if err != nil {
		return nil, err
	}
	username, err := stringField(body, "username", "Login")
	if err != nil {
		return nil, err
	}
	email, err := stringField(body, "email", "Login")
	if err != nil {
		return nil, err
	}
	rawQuestions, err := mapListField(body, "security_questions", "Login")
	if err != nil {
		return nil, err
	}
	questions := make([]SecurityQuestion, 0, len(rawQuestions))
	for _, raw := range rawQuestions {
		sq, err := securityQuestionFromWire(raw)
		if err != nil {
			return nil, err
		}
		questions = append(questions, sq)
	}
	tagList, err := stringListField(body, "tags", "Login")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Login{
		Application:       application,
		Password:          password,
		URL:               url,
		Username:          username,
		Email:             email,
		SecurityQuestions: questions,
		Tags:              tagList,
	}, nil
}

var LoginCategory = Category{
	Name:       "Login",
	Plural:     "logins",
	Collection: "logins",
	HasTags:    true,
	FromWire:   LoginFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Login{}, id, data)
	},
}
