package callflow

import "encoding/xml"

// Minimal TwiML rendering for the verbs the interview script uses.

type voiceResponse struct {
	XMLName xml.Name    `xml:"Response"`
	Say     []string    `xml:"Say"`
	Record  *recordVerb `xml:"Record,omitempty"`
	Hangup  *hangupVerb `xml:"Hangup,omitempty"`
}

type recordVerb struct {
	MaxLength               int    `xml:"maxLength,attr"`
	PlayBeep                bool   `xml:"playBeep,attr"`
	Action                  string `xml:"action,attr"`
	RecordingStatusCallback string `xml:"recordingStatusCallback,attr"`
}

type hangupVerb struct{}

func renderTwiML(response voiceResponse) ([]byte, error) {
	body, err := xml.Marshal(response)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
