package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/iwvelando/nav-landing/internal/config"
	"gopkg.in/yaml.v3"
)

type exportResponse struct {
	Document config.Document `json:"document"`
	YAML     string          `json:"yaml"`
	Notices  []string        `json:"notices,omitempty"`
}

func (h *handler) handleEditorExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEditorExport"
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	params, notices, err := config.DecodeParameters(h.logger, body)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	doc := params.ToDocument()
	yamlBytes, err := marshalOrderedDocumentYAML(doc)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode parameters: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, exportResponse{
		Document: doc,
		YAML:     string(yamlBytes),
		Notices:  notices,
	})
}

// marshalOrderedDocumentYAML renders the document as YAML keeping the key
// order of its JSON form, so nom_fonds and nom_scenario come first, and
// keeping amounts exactly as written.
func marshalOrderedDocumentYAML(doc config.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := jsonToYAMLNode(dec)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func jsonToYAMLNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			mapNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				valueNode, err := jsonToYAMLNode(dec)
				if err != nil {
					return nil, err
				}
				mapNode.Content = append(mapNode.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
					valueNode,
				)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return mapNode, nil
		case '[':
			seqNode := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := jsonToYAMLNode(dec)
				if err != nil {
					return nil, err
				}
				seqNode.Content = append(seqNode.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			// [label, amount] pairs read better inline
			if len(seqNode.Content) == 2 && seqNode.Content[0].Kind == yaml.ScalarNode && seqNode.Content[1].Kind == yaml.ScalarNode {
				seqNode.Style = yaml.FlowStyle
			}
			return seqNode, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
