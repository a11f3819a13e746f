package extract

import "strings"

// Classifier decides what a definition-language class contributes to the
// model. Both methods receive the class name and the class id derived from
// the module file name.
type Classifier interface {
	// IsDetailInterface reports whether the class lists the properties
	// shown on the detail view of classID.
	IsDetailInterface(className, classID string) bool

	// IsModelClass reports whether the class body describes a modelled
	// class (its assignments become properties and relations).
	IsModelClass(className, classID string) bool
}

// NamingClassifier applies the package naming conventions:
// I<ClassId>Info is the detail interface of ClassId, and any class whose
// name occurs in the class id (and is not an Info interface) is modelled.
type NamingClassifier struct{}

// IsDetailInterface implements Classifier
func (NamingClassifier) IsDetailInterface(className, classID string) bool {
	return className == "I"+classID+"Info"
}

// IsModelClass implements Classifier
func (NamingClassifier) IsModelClass(className, classID string) bool {
	return !strings.Contains(className, "Info") && strings.Contains(classID, className)
}

// ClassifierFuncs adapts two predicate functions to a Classifier.
// A nil function never matches.
type ClassifierFuncs struct {
	DetailInterface func(className, classID string) bool
	ModelClass      func(className, classID string) bool
}

// IsDetailInterface implements Classifier
func (f ClassifierFuncs) IsDetailInterface(className, classID string) bool {
	return f.DetailInterface != nil && f.DetailInterface(className, classID)
}

// IsModelClass implements Classifier
func (f ClassifierFuncs) IsModelClass(className, classID string) bool {
	return f.ModelClass != nil && f.ModelClass(className, classID)
}
