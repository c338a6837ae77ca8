package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerTypesUnmarshalSingleString(t *testing.T) {
	var answers SurveyAnswers
	require.NoError(t, json.Unmarshal([]byte(`{"listenerType": "founders-executives"}`), &answers))
	assert.Equal(t, ListenerTypes{ListenerFoundersExecutives}, answers.ListenerType)
}

func TestListenerTypesUnmarshalArray(t *testing.T) {
	var answers SurveyAnswers
	require.NoError(t, json.Unmarshal([]byte(`{"listenerType": ["founders-executives", "young-professionals"]}`), &answers))
	assert.Equal(t, ListenerTypes{ListenerFoundersExecutives, ListenerYoungProfessionals}, answers.ListenerType)
}

func TestListenerTypesUnmarshalEmptyValues(t *testing.T) {
	var answers SurveyAnswers
	require.NoError(t, json.Unmarshal([]byte(`{"listenerType": ""}`), &answers))
	assert.Empty(t, answers.ListenerType)

	require.NoError(t, json.Unmarshal([]byte(`{"listenerType": ["", "hobbyists-diy"]}`), &answers))
	assert.Equal(t, ListenerTypes{ListenerHobbyistsDIY}, answers.ListenerType)
}

func TestListenerTypesUnmarshalRejectsWrongShape(t *testing.T) {
	var types ListenerTypes
	assert.Error(t, json.Unmarshal([]byte(`{"not": "a list"}`), &types))
}

func TestSurveyAnswersAllFieldsOptional(t *testing.T) {
	var answers SurveyAnswers
	require.NoError(t, json.Unmarshal([]byte(`{}`), &answers))
	assert.Equal(t, SurveyAnswers{}, answers)
}
