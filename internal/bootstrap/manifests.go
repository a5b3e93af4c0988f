package bootstrap

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	rbacv1 "k8s.io/api/rbac/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
)

// ClusterRoleName is the name of the generated ClusterRole.
const ClusterRoleName = "opsharness"

// Manifest is a named YAML document.
type Manifest struct {
	// FileName is used when writing to a directory.
	FileName string
	Content  []byte
}

// ClusterRole returns the permissions the harness needs.
func ClusterRole() *rbacv1.ClusterRole {
	return &rbacv1.ClusterRole{
		TypeMeta: metav1.TypeMeta{
			APIVersion: rbacv1.SchemeGroupVersion.String(),
			Kind:       "ClusterRole",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: ClusterRoleName,
		},
		Rules: []rbacv1.PolicyRule{
			{
				APIGroups: []string{v1alpha1.Group},
				Resources: []string{v1alpha1.Plural},
				Verbs:     []string{"get", "list", "watch", "create", "delete", "patch", "update"},
			},
			{
				APIGroups: []string{v1alpha1.Group},
				Resources: []string{v1alpha1.Plural + "/status"},
				Verbs:     []string{"get", "patch", "update"},
			},
			{
				APIGroups: []string{apiextensionsv1.GroupName},
				Resources: []string{"customresourcedefinitions"},
				Verbs:     []string{"get", "create"},
			},
			{
				APIGroups: []string{""},
				Resources: []string{"events"},
				Verbs:     []string{"create", "patch"},
			},
		},
	}
}

// Manifests renders the CRD and the ClusterRole.
func Manifests() ([]Manifest, error) {
	role, err := yaml.Marshal(ClusterRole())
	if err != nil {
		return nil, fmt.Errorf("failed to render ClusterRole: %w", err)
	}

	return []Manifest{
		{FileName: v1alpha1.CRDName() + ".yaml", Content: crdManifest},
		{FileName: "clusterrole.yaml", Content: role},
	}, nil
}

// WriteManifests writes every manifest as a file in dir, creating it if needed.
// An empty dir writes a single multi-document stream to w instead.
func WriteManifests(dir string, w io.Writer) error {
	manifests, err := Manifests()
	if err != nil {
		return err
	}

	if dir == "" {
		for i, m := range manifests {
			if i > 0 {
				if _, err := io.WriteString(w, "---\n"); err != nil {
					return err
				}
			}
			if _, err := w.Write(ensureTrailingNewline(m.Content)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	for _, m := range manifests {
		path := filepath.Join(dir, m.FileName)
		if err := os.WriteFile(path, ensureTrailingNewline(m.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logging.Info("Bootstrap", "Wrote %s", path)
	}
	return nil
}

func ensureTrailingNewline(b []byte) []byte {
	if bytes.HasSuffix(b, []byte("\n")) {
		return b
	}
	return append(append([]byte(nil), b...), '\n')
}
