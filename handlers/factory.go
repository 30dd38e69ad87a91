// Copyright 2026 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of LEMMAD.
//
//  LEMMAD is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  LEMMAD is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with LEMMAD.  If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"lemmad/lemmatizer"
	"lemmad/monitoring"
)

func NewActions(
	factory *lemmatizer.Factory,
	loader Loader,
	analysisConf AnalysisConf,
	reqLogger *monitoring.RequestLogger,
) *Actions {
	if reqLogger == nil {
		reqLogger = monitoring.NewRequestLogger(nil)
	}
	ans := &Actions{
		loader:    loader,
		analysis:  analysisConf,
		reqLogger: reqLogger,
	}
	ans.factory.Store(factory)
	return ans
}
