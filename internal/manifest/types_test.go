package manifest

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestArgumentUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue []string
		wantRules int
	}{
		{
			name:      "literal token",
			input:     `"--username"`,
			wantValue: []string{"--username"},
		},
		{
			name:      "conditional single value",
			input:     `{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":"-XstartOnFirstThread"}`,
			wantValue: []string{"-XstartOnFirstThread"},
			wantRules: 1,
		},
		{
			name:      "conditional value list",
			input:     `{"rules":[{"action":"allow"}],"value":["--width","${resolution_width}"]}`,
			wantValue: []string{"--width", "${resolution_width}"},
			wantRules: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var arg Argument
			if err := json.Unmarshal([]byte(tt.input), &arg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(arg.Value, tt.wantValue) {
				t.Errorf("Value = %v, want %v", arg.Value, tt.wantValue)
			}
			if len(arg.Rules) != tt.wantRules {
				t.Errorf("len(Rules) = %d, want %d", len(arg.Rules), tt.wantRules)
			}
		})
	}
}

func TestArgumentUnmarshal_Invalid(t *testing.T) {
	var arg Argument
	if err := json.Unmarshal([]byte(`{"rules":[],"value":42}`), &arg); err == nil {
		t.Error("expected error for non-string argument value")
	}
}

func TestVersionMetadataUnmarshal(t *testing.T) {
	doc := `{
		"id": "1.21",
		"type": "release",
		"mainClass": "net.minecraft.client.main.Main",
		"assetIndex": {"id": "17"},
		"downloads": {"client": {"url": "https://example.invalid/client.jar", "sha1": "abc", "size": 7}},
		"libraries": [
			{
				"name": "org.lwjgl:lwjgl:3.3.3",
				"downloads": {
					"artifact": {"url": "https://example.invalid/lwjgl.jar", "sha1": "def", "path": "org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3.jar"},
					"classifiers": {"natives-linux": {"url": "https://example.invalid/lwjgl-natives.jar", "sha1": "0123"}}
				},
				"natives": {"linux": "natives-linux"},
				"rules": [{"action": "allow"}, {"action": "disallow", "os": {"name": "osx"}}]
			}
		],
		"arguments": {
			"jvm": ["-Djava.library.path=${natives_directory}"],
			"game": ["--username", "${auth_player_name}"]
		}
	}`

	var meta VersionMetadata
	if err := json.Unmarshal([]byte(doc), &meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.MainClass != "net.minecraft.client.main.Main" {
		t.Errorf("MainClass = %q", meta.MainClass)
	}
	client, ok := meta.Client()
	if !ok || client.SHA1 != "abc" {
		t.Errorf("Client() = %+v, %v", client, ok)
	}
	if len(meta.Libraries) != 1 {
		t.Fatalf("len(Libraries) = %d", len(meta.Libraries))
	}
	lib := meta.Libraries[0]
	if lib.Natives["linux"] != "natives-linux" {
		t.Errorf("Natives = %v", lib.Natives)
	}
	if _, ok := lib.Downloads.Classifiers["natives-linux"]; !ok {
		t.Error("missing natives-linux classifier")
	}
	if len(lib.Rules) != 2 {
		t.Errorf("len(Rules) = %d", len(lib.Rules))
	}
	if len(meta.Arguments.Game) != 2 {
		t.Errorf("len(Arguments.Game) = %d", len(meta.Arguments.Game))
	}
}
